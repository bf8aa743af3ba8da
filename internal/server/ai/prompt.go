package ai

import "fmt"

// ContentPrompt asks for a summary of extracted file text.
func ContentPrompt(name, fileType, content string) string {
	return fmt.Sprintf(`Analyze this file content and generate a brief, informative summary (2-3 sentences):

File Name: %s
File Type: %s

Content:
%s

Focus on the main topics, purpose, and key information. Be concise and professional.`, name, fileType, content)
}

// NamePrompt asks for a best guess from the name and declared type alone.
func NamePrompt(name, fileType string) string {
	return fmt.Sprintf(`Generate a brief, informative summary (2-3 sentences) about what this file likely contains based on its name and type:

File Name: %s
File Type: %s

Focus on the probable content, purpose, and context. Be concise and professional.`, name, fileType)
}

// ImagePrompt accompanies inline image bytes.
func ImagePrompt(name string) string {
	return fmt.Sprintf(`Describe this image in a brief, informative summary (2-3 sentences).

File Name: %s

Focus on the main subject, setting, and any visible text. Be concise and professional.`, name)
}
