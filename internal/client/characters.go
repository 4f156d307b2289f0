// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

package client

import (
	"strings"
	"time"
)

// Character is one playable character, with the static data that does not
// need an API round trip: name, band, and birthday (month/day).
type Character struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Band          string `json:"band"`
	BirthdayMonth int    `json:"birthday_month"`
	BirthdayDay   int    `json:"birthday_day"`
}

// Band names by band ID.
var bandNames = map[int]string{
	1:  "Poppin'Party",
	2:  "Afterglow",
	3:  "Pastel*Palettes",
	4:  "Roselia",
	5:  "Hello, Happy World!",
	18: "RAISE A SUILEN",
	21: "Morfonica",
	22: "MyGO!!!!!",
	23: "Ave Mujica",
}

// characters is the static roster, ID-ordered. Birthdays are month/day.
var characters = map[int]Character{
	// Poppin'Party
	1: {1, "Kasumi Toyama", bandNames[1], 7, 14},
	2: {2, "Tae Hanazono", bandNames[1], 12, 4},
	3: {3, "Rimi Ushigome", bandNames[1], 3, 23},
	4: {4, "Saya Yamabuki", bandNames[1], 5, 19},
	5: {5, "Arisa Ichigaya", bandNames[1], 10, 27},
	// Afterglow
	6:  {6, "Ran Mitake", bandNames[2], 4, 10},
	7:  {7, "Moca Aoba", bandNames[2], 9, 3},
	8:  {8, "Himari Uehara", bandNames[2], 10, 23},
	9:  {9, "Tomoe Udagawa", bandNames[2], 4, 15},
	10: {10, "Tsugumi Hazawa", bandNames[2], 1, 7},
	// Hello, Happy World!
	11: {11, "Kokoro Tsurumaki", bandNames[5], 8, 8},
	12: {12, "Kaoru Seta", bandNames[5], 2, 28},
	13: {13, "Hagumi Kitazawa", bandNames[5], 7, 30},
	14: {14, "Kanon Matsubara", bandNames[5], 5, 11},
	15: {15, "Misaki Okusawa", bandNames[5], 10, 1},
	// Pastel*Palettes
	16: {16, "Aya Maruyama", bandNames[3], 12, 27},
	17: {17, "Hina Hikawa", bandNames[3], 3, 20},
	18: {18, "Chisato Shirasagi", bandNames[3], 4, 6},
	19: {19, "Maya Yamato", bandNames[3], 11, 3},
	20: {20, "Eve Wakamiya", bandNames[3], 6, 27},
	// Roselia
	21: {21, "Yukina Minato", bandNames[4], 10, 26},
	22: {22, "Sayo Hikawa", bandNames[4], 3, 20},
	23: {23, "Lisa Imai", bandNames[4], 8, 25},
	24: {24, "Ako Udagawa", bandNames[4], 7, 3},
	25: {25, "Rinko Shirokane", bandNames[4], 10, 17},
	// Morfonica
	26: {26, "Mashiro Kurata", bandNames[21], 2, 19},
	27: {27, "Touko Kirigaya", bandNames[21], 12, 16},
	28: {28, "Nanami Hiromachi", bandNames[21], 6, 16},
	29: {29, "Tsukushi Futaba", bandNames[21], 9, 15},
	30: {30, "Rui Yashio", bandNames[21], 11, 19},
	// RAISE A SUILEN
	31: {31, "Rei Wakana", bandNames[18], 1, 13},
	32: {32, "Rokka Asahi", bandNames[18], 7, 17},
	33: {33, "Masuki Sato", bandNames[18], 5, 12},
	34: {34, "Reona Nyubara", bandNames[18], 3, 25},
	35: {35, "Chiyu Tamade", bandNames[18], 12, 7},
	// MyGO!!!!!
	36: {36, "Tomori Takamatsu", bandNames[22], 11, 22},
	37: {37, "Anon Chihaya", bandNames[22], 9, 8},
	38: {38, "Rana Kaname", bandNames[22], 2, 22},
	39: {39, "Soyo Nagasaki", bandNames[22], 5, 27},
	40: {40, "Taki Shiina", bandNames[22], 8, 9},
	// Ave Mujica
	41: {41, "Uika Misumi", bandNames[23], 6, 26},
	42: {42, "Mutsumi Wakaba", bandNames[23], 1, 14},
	43: {43, "Umiri Yahata", bandNames[23], 4, 7},
	44: {44, "Nyamu Yutenji", bandNames[23], 6, 1},
	45: {45, "Sakiko Togawa", bandNames[23], 2, 14},
	// No band
	46: {46, "Mana Sumita", "", 0, 0},
}

// characterAliases maps common nicknames and stage names to character IDs.
var characterAliases = map[string]int{
	"kasumi": 1, "tae": 2, "otae": 2, "rimi": 3, "saya": 4, "saaya": 4, "arisa": 5,
	"ran": 6, "moca": 7, "himari": 8, "tomoe": 9, "tsugumi": 10, "tsugu": 10,
	"kokoro": 11, "kaoru": 12, "hagumi": 13, "kanon": 14, "misaki": 15, "michelle": 15,
	"aya": 16, "hina": 17, "chisato": 18, "maya": 19, "eve": 20,
	"yukina": 21, "sayo": 22, "lisa": 23, "ako": 24, "rinko": 25,
	"mashiro": 26, "touko": 27, "toko": 27, "nanami": 28, "tsukushi": 29, "rui": 30,
	"layer": 31, "lock": 32, "masking": 33, "pareo": 34, "chu2": 35, "chuchu": 35,
	"tomori": 36, "anon": 37, "rana": 38, "raana": 38, "soyo": 39, "taki": 40,
	"uika": 41, "doloris": 41, "mutsumi": 42, "mortis": 42, "umiri": 43, "timoris": 43,
	"nyamu": 44, "amoris": 44, "sakiko": 45, "oblivionis": 45, "mana": 46,
}

// CharacterByID returns the character for an ID, or false when unknown.
func CharacterByID(id int) (Character, bool) {
	ch, ok := characters[id]
	return ch, ok
}

// CharacterByName resolves a character by full name, given name, or alias,
// case-insensitively. Returns false when nothing matches.
func CharacterByName(name string) (Character, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Character{}, false
	}
	if id, ok := characterAliases[name]; ok {
		return characters[id], true
	}
	for _, ch := range characters {
		if strings.ToLower(ch.Name) == name {
			return ch, true
		}
	}
	// Substring match against full names, e.g. "hikawa". First ID wins to
	// keep resolution deterministic.
	var best int
	for id, ch := range characters {
		if strings.Contains(strings.ToLower(ch.Name), name) {
			if best == 0 || id < best {
				best = id
			}
		}
	}
	if best != 0 {
		return characters[best], true
	}
	return Character{}, false
}

// BirthdaysOn returns the characters whose birthday falls on the given
// month and day, ID-ascending.
func BirthdaysOn(month time.Month, day int) []Character {
	var out []Character
	for id := 1; id <= len(characters); id++ {
		ch := characters[id]
		if ch.BirthdayMonth == int(month) && ch.BirthdayDay == day {
			out = append(out, ch)
		}
	}
	return out
}

// BirthdaysInMonth returns the characters with a birthday in the given
// month, ordered by day then ID.
func BirthdaysInMonth(month time.Month) []Character {
	var out []Character
	for day := 1; day <= 31; day++ {
		out = append(out, BirthdaysOn(month, day)...)
	}
	return out
}
