package synthesis

import "fmt"

const imagePrompt = `Analyze this image and describe:
- Every visual object present (natural elements, buildings, creatures, people, symbols)
- Their positions and spatial relationships
- Any text content, quoted exactly as written
- Any numeric or percentage values, exactly as written
- Colors present and artistic style
- Overall composition

Provide only descriptive adjectives, nouns and quoted literals. No sentences.`

func combinedPrompt(imageAnalysis string, structural string) string {
	return fmt.Sprintf(`Combine these visual and technical elements into one dense description:

Visual elements: %s

Technical elements: %s

Rules:
- Keep every quoted text literal verbatim
- Keep every numeric and percentage value exactly
- Provide only descriptive adjectives, nouns and quoted literals. No sentences.
- Return the description text only, no preamble and no markdown.`, imageAnalysis, structural)
}
