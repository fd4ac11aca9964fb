package gen

import "fmt"

// BuildPrompt constructs the instruction string sent to the generative model.
//
// The model is not a structured-output API, so the prompt is the only contract
// enforcement available upstream of parsing: it spells out the required fields
// per song, asks for artist diversity, and demands a bare JSON array with no
// prose or code-fence markup around it.
func BuildPrompt(seed string, count int) string {
	return fmt.Sprintf(`Generate a curated playlist of %d songs similar to "%s". For each song, provide:

1. Song title
2. Artist name
3. Album name (if applicable)
4. Release year
5. Genre(s)
6. A brief explanation (1-2 sentences) of why this song is similar to "%s" in terms of style, mood, or musical elements.

Ensure a diverse selection within the similarity criteria, including both well-known and lesser-known artists. Avoid duplicate artists unless they have a particularly relevant song. Format the response as a JSON array of objects, each containing the fields: name, artist, album, year, genres (as an array), and explanation. Ensure the JSON is valid and properly formatted. Do not include any markdown formatting, code block syntax, or additional text in your response. The response should be a valid JSON array and nothing else.`, count, seed, seed)
}
