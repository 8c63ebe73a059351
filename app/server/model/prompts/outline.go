package prompts

import "fmt"

const outlineFormat = `[
  {
    "h1": "Optimized H1 title",
    "meta_title": "Optimized meta title, different from the H1",
    "meta_desc": "Optimized meta description"
  },
  {
    "sections": [
      {
        "level": "h2",
        "title": "Level 2 section title"
      },
      {
        "level": "h3",
        "title": "Level 3 section title"
      }
    ]
  }
]`

func GetOutlinePrompt(query, language string) string {
	return fmt.Sprintf(`I want to write a blog article optimized for the search query: "%[1]s".

The article must be SEO-optimized and as complete as possible. To build the most complete and relevant outline, analyze the search intent by collecting the important words for the query "%[1]s" from:
- The titles and subtitles of the articles ranking on the first page
- The meta titles of the articles ranking on the first page
- Google suggest
- People also ask

With the list of collected words:
- Write an H1 title, a meta title, and a meta description optimized for the target query (draw on the information you collected)
- Organize the words into the article outline. Every word must appear at least once in one of the H2 or H3 headings.

Write every title and description in %[2]s.

Give me the answer in this format (json), without any other comment:

%[3]s`, query, language, outlineFormat)
}
