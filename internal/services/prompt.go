package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resumai/internal/models"
)

const (
	maxPromptResumeChars = 15000
	maxPromptJDChars     = 8000
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumePrompt creates the resume prompt for the chosen template.
func (pb *PromptBuilder) BuildResumePrompt(p models.Profile, template models.Template) string {
	base := fmt.Sprintf(`Write a professional resume for %s, applying for a %s position.
Contact: %s, %s, LinkedIn: %s, GitHub: %s
TECHNICAL SKILLS: %s
WORK EXPERIENCE: %s
PROJECT EXPERIENCE: %s
EDUCATION: %s
`,
		p.Name, p.Role, p.Email, p.Phone, p.LinkedIn, p.GitHub,
		p.Skills, p.Experience, p.Projects, p.Education)

	return base + "\n" + templateInstruction(template) + "\nEnsure clear headings using ## for sections."
}

func templateInstruction(template models.Template) string {
	switch template {
	case models.TemplateMinimalistClean:
		return `STRICT FORMAT: Minimalist (Linear).
1. Header: Name (Bold), Role, Contact Info (in one line if possible).
2. Summary: 2-3 lines max.
3. Education: University, Degree, Year (Clean list).
4. Projects: Project Name | Tech Stack | Date. Bullet points for results.
5. Skills: Categorized list (e.g., Languages, Tools).
NO complex tables. Clean, scannable text.`
	case models.TemplateStructuredProfessional:
		return `STRICT FORMAT: Structured (Emphasis on Projects).
1. Header.
2. Professional Summary.
3. Projects: DETAILED. Use "Project Name | Tech Stack" as header. 3 bullet points per project emphasizing numbers/results.
4. Technical Skills: Grouped clearly.
5. Education.
6. Languages/Interests (Short).`
	default:
		return "Standard Chronological format. Experience first, then Projects."
	}
}

// BuildCoverLetterPrompt creates the cover letter prompt
func (pb *PromptBuilder) BuildCoverLetterPrompt(req models.CoverLetterRequest) string {
	return fmt.Sprintf(`Write a professional cover letter for %s to %s for the role of %s.
JOB DESCRIPTION: %s

STRICT RULES:
1. Tone: Professional, enthusiastic, and confident.
2. Do NOT use brackets or placeholders like [Your Name], [Date], or [Manager Name].
3. Use strictly the information provided. If a detail (like address) is missing, do not include that line.
4. Sign off with the user's actual name: %s.`,
		req.Name, req.Company, req.Role, req.JobDescription, req.Name)
}

// BuildPortfolioProjectsPrompt asks for the raw project notes as structured cards.
func (pb *PromptBuilder) BuildPortfolioProjectsPrompt(rawProjects string) string {
	return fmt.Sprintf(`Convert these project descriptions into portfolio project cards.
Input Projects:
%s

Return ONLY a JSON array, one object per project, in this format:
[
  {
    "name": "<project name>",
    "description": "<short description, 1-2 sentences>",
    "tech_stack": "<comma separated technologies>"
  }
]

Use only the information provided. Do NOT include HTML or markdown backticks.`, rawProjects)
}

// BuildATSFeedbackPrompt creates the qualitative half of the ATS scan.
func (pb *PromptBuilder) BuildATSFeedbackPrompt(resumeText, jobDescription string) string {
	resumeText = truncate(sanitizeUTF8(strings.TrimSpace(resumeText)), maxPromptResumeChars)
	jobDescription = truncate(sanitizeUTF8(strings.TrimSpace(jobDescription)), maxPromptJDChars)

	return fmt.Sprintf(`You are an Applicant Tracking System (ATS) expert analyzing a resume against a job description.

JOB DESCRIPTION:
%s

RESUME:
%s

Provide:
1. Missing Keywords: skills, tools and qualifications the job description asks for that the resume lacks.
2. Improvement Tips: concrete, actionable changes to the resume.

Return your response in the following JSON format:
{
  "match_score": <0-100, how well the resume fits the job>,
  "missing_keywords": ["<keyword>", "..."],
  "improvement_tips": ["<tip>", "..."],
  "summary": "<2-3 sentences on overall fit>"
}

Be objective. Only list keywords that genuinely appear in or are implied by the job description.`,
		jobDescription, resumeText)
}
