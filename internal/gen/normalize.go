package gen

import (
	"strconv"

	"github.com/desertthunder/mixgen/internal/models"
)

// UnknownField is the sentinel used when a record is missing a required field.
const UnknownField = "Unknown"

// Normalize coerces one raw record into a canonical [models.Song].
//
// This stage is total: it never fails, and every record-like value becomes a
// valid song. Name and artist default to "Unknown" when missing or empty;
// genres defaults to an empty slice unless the source value is an actual
// array; album, year, and explanation pass through only when present.
func Normalize(record map[string]any) models.Song {
	song := models.Song{
		Name:   stringField(record, "name"),
		Artist: stringField(record, "artist"),
		Genres: []string{},
	}

	if song.Name == "" {
		song.Name = UnknownField
	}
	if song.Artist == "" {
		song.Artist = UnknownField
	}

	if album, ok := record["album"].(string); ok {
		song.Album = album
	}
	if explanation, ok := record["explanation"].(string); ok {
		song.Explanation = explanation
	}
	song.Year = stringField(record, "year")

	if genres, ok := record["genres"].([]any); ok {
		for _, g := range genres {
			if s, ok := g.(string); ok {
				song.Genres = append(song.Genres, s)
			}
		}
	}

	return song
}

// stringField reads a field as a string, accepting JSON numbers for fields the
// model sometimes emits unquoted (release years in particular).
func stringField(record map[string]any, key string) string {
	switch v := record[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
