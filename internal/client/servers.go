// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package client

import "strings"

// Game server IDs in Bestdori array order: per-server fields in the API are
// five-element arrays indexed by these values.
const (
	ServerJP = 0
	ServerEN = 1
	ServerTW = 2
	ServerCN = 3
	ServerKR = 4
)

// serverCodes maps server ID to its short code.
var serverCodes = map[int]string{
	ServerJP: "jp",
	ServerEN: "en",
	ServerTW: "tw",
	ServerCN: "cn",
	ServerKR: "kr",
}

// serverNames maps server ID to a display name.
var serverNames = map[int]string{
	ServerJP: "Japan",
	ServerEN: "Global",
	ServerTW: "Taiwan",
	ServerCN: "China",
	ServerKR: "Korea",
}

// ServerPriority is the fallback order used when a per-server field is
// empty on the preferred server.
var ServerPriority = []int{ServerCN, ServerJP, ServerEN, ServerTW, ServerKR}

// ServerCode returns the short code for a server ID, defaulting to "cn".
func ServerCode(id int) string {
	if code, ok := serverCodes[id]; ok {
		return code
	}
	return serverCodes[ServerCN]
}

// ServerName returns the display name for a server ID.
func ServerName(id int) string {
	if name, ok := serverNames[id]; ok {
		return name
	}
	return serverNames[ServerCN]
}

// ServerID parses a server code or name, defaulting to ServerCN when the
// input is unrecognized.
func ServerID(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, code := range serverCodes {
		if name == code {
			return id
		}
	}
	for id, display := range serverNames {
		if name == strings.ToLower(display) {
			return id
		}
	}
	return ServerCN
}
