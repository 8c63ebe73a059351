package prompts

import "fmt"

// GetSectionPrompt asks for the facts of one section. A minor section with a
// parent is told not to repeat what belongs to the parent.
func GetSectionPrompt(h1, section, parent, language string) string {
	if parent != "" {
		return fmt.Sprintf(`For the section "%s" of my article about "%s", which is part of the section "%s", give me only the essential information specific to this subsection, without repeating the general information of the parent section. Provide only the important facts, concisely, with no introduction or conclusion. Answer in %s.`,
			section, h1, parent, language)
	}

	return fmt.Sprintf(`For the section "%s" of my article about "%s", give me only the essential information specific to this section. Provide only the important facts, concisely, with no introduction or conclusion. Answer in %s.`,
		section, h1, language)
}
