package enhancer

import "fmt"

const visionInstructions = `Generate a simple image caption that looks like it came from a classical encoder-decoder captioning model, using the attached image.

Original caption: %q

Requirements:
- Write a simple, straightforward caption (8-15 words max)
- Use simple, direct language - no flowery descriptions
- Format: "a [subject] is [action] [location/scene]"
- Focus on main objects and basic actions only
- No detailed descriptions, emotions, or artistic language
- Keep it factual and minimal - like a machine learning model output
- Example style: "a man is standing in front of a building" not "A distinguished gentleman stands confidently in front of a modern architectural structure"

Generate a simple ML-style caption:`

const textInstructions = `Generate a simple image caption in the style of a classical encoder-decoder captioning model output.

Original caption: %q

Requirements:
- Generate a simple, direct caption (8-15 words maximum)
- Use basic, straightforward language only
- Format like ML models: "a [subject] is [action] [location]"
- Focus on main objects and basic scene description
- No detailed descriptions or complex sentences
- Keep it short and factual - typical ML model style
- Example: "a man is standing in front of a building" or "a car is parked on the street"
- Return only the caption, no explanations

Simple ML-style caption:`

// visionPrompt builds the rewrite prompt for requests that attach the image.
func visionPrompt(original string) string {
	return fmt.Sprintf(visionInstructions, original)
}

// textPrompt builds the rewrite prompt for text-only requests.
func textPrompt(original string) string {
	return fmt.Sprintf(textInstructions, original)
}
