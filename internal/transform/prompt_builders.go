package transform

import (
	"fmt"
	"strings"

	"github.com/mwehrli/swisscv/internal/locale"
	"github.com/mwehrli/swisscv/internal/prompts"
)

// languageInstruction builds the language block for a prompt. With a known
// locale the model is pinned to that language; otherwise it is told to detect
// and keep the input language.
func languageInstruction(loc string) string {
	if locale.Supported(loc) {
		name := locale.LanguageName(loc)
		return fmt.Sprintf("- Write your response ENTIRELY in %[1]s\n"+
			"- Maintain %[1]s throughout your entire response\n"+
			"- Use professional %[1]s business language and terminology", name)
	}
	return "- Detect the language of the provided text\n" +
		"- Write your response in THE SAME LANGUAGE as the input text\n" +
		"- If the input is in French, respond in French\n" +
		"- If the input is in German, respond in German\n" +
		"- If the input is in English, respond in English\n" +
		"- Maintain the same language throughout your entire response"
}

// buildSummaryPrompt constructs the summary transformation prompt.
func buildSummaryPrompt(input SummaryInput) string {
	var context strings.Builder
	if input.CurrentRole != "" {
		fmt.Fprintf(&context, "- Current Role: %s\n", input.CurrentRole)
	}
	if input.YearsOfExperience > 0 {
		fmt.Fprintf(&context, "- Years of Experience: %d\n", input.YearsOfExperience)
	}
	if len(input.TopSkills) > 0 {
		fmt.Fprintf(&context, "- Top Skills: %s\n", strings.Join(input.TopSkills, ", "))
	}

	template := prompts.MustGet("transform.json", "transform-summary")
	return prompts.Format(template, map[string]string{
		"LanguageInstruction": languageInstruction(input.Locale),
		"Context":             strings.TrimRight(context.String(), "\n"),
		"RawSummary":          input.RawSummary,
	})
}

// buildExperiencePrompt constructs the achievement-bullet prompt.
func buildExperiencePrompt(input ExperienceInput) string {
	descriptionLine := ""
	if input.Description != "" {
		descriptionLine = "- Description: " + input.Description
	}

	achievements := "None provided"
	if len(input.Achievements) > 0 {
		var b strings.Builder
		for i, a := range input.Achievements {
			fmt.Fprintf(&b, "%d. %s\n", i+1, a)
		}
		achievements = strings.TrimRight(b.String(), "\n")
	}

	template := prompts.MustGet("transform.json", "transform-experience")
	return prompts.Format(template, map[string]string{
		"LanguageInstruction": languageInstruction(input.Locale),
		"Position":            input.Position,
		"Company":             input.Company,
		"DescriptionLine":     descriptionLine,
		"Achievements":        achievements,
	})
}

// buildTranslationPrompt constructs the summary translation prompt.
func buildTranslationPrompt(input TranslateInput) string {
	template := prompts.MustGet("transform.json", "translate-summary")
	return prompts.Format(template, map[string]string{
		"TargetLanguage": locale.LanguageName(input.TargetLocale),
		"Summary":        input.Summary,
	})
}

// buildOptimizePrompt constructs the description optimization prompt.
func buildOptimizePrompt(input OptimizeInput) string {
	contextLine := ""
	if input.Context != "" {
		contextLine = "Context: " + input.Context + "\n\n"
	}

	template := prompts.MustGet("transform.json", "optimize-description")
	return prompts.Format(template, map[string]string{
		"LanguageInstruction": languageInstruction(input.Locale),
		"ContextLine":         contextLine,
		"Text":                input.Text,
	})
}

// buildResumePrompt constructs the resume generation prompt. The gap section
// is only present on retry iterations.
func buildResumePrompt(input ResumeFromJobInput) string {
	gapSection := ""
	if input.GapPrompt != "" {
		gapSection = input.GapPrompt + "\n\n"
	}

	template := prompts.MustGet("transform.json", "resume-from-job-description")
	return prompts.Format(template, map[string]string{
		"TargetLanguage": locale.LanguageName(locale.Normalize(input.Locale)),
		"JobDescription": input.JobDescription,
		"GapSection":     gapSection,
	})
}

// buildAdaptPrompt constructs the resume adaptation prompt.
func buildAdaptPrompt(input AdaptInput) string {
	var experience strings.Builder
	for _, exp := range input.Resume.Experience {
		fmt.Fprintf(&experience, "- %s at %s: %s\n", exp.Position, exp.Company, exp.Description)
	}

	var skills strings.Builder
	for _, cat := range input.Resume.Skills {
		fmt.Fprintf(&skills, "- %s: %s\n", cat.Category, strings.Join(cat.Items, ", "))
	}

	template := prompts.MustGet("transform.json", "adapt-resume")
	return prompts.Format(template, map[string]string{
		"TargetLanguage":    locale.LanguageName(locale.Normalize(input.Locale)),
		"JobTitle":          input.JobTitle,
		"Company":           input.Company,
		"JobDescription":    input.JobDescription,
		"CurrentSummary":    input.Resume.Summary,
		"CurrentExperience": strings.TrimRight(experience.String(), "\n"),
		"CurrentSkills":     strings.TrimRight(skills.String(), "\n"),
	})
}
