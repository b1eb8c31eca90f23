package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildIndividualAnalysisPrompt asks for the structured (JSON) response
// contract parsed by FormatStructured.
func (pb *PromptBuilder) BuildIndividualAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert recruiter tasked with determining if a candidate is suitable for a position.
You are given a job description and a resume.
Based on the resume and the job description, provide a detailed suitability assessment. Return the response as a JSON object.
The JSON object should contain the following keys:
* match_percentage: A string representing the percentage match between the resume and the job description (0-100).
* found_keywords: A list of keywords found in the resume.
* missing_keywords: A list of essential keywords missing from the resume.
* key_strengths: A list of the main strengths of the candidate.
* areas_for_improvement: A list of key areas where the resume could be enhanced.
* resume_formatting_tips: A list of specific suggestions for making the resume more ATS-friendly.

Job Description: %s

Resume: %s`, jobDescription, resumeText)
}

// BuildBulkAnalysisPrompt asks for the narrative (Markdown sections)
// response contract parsed by FormatNarrative. The section labels here and
// in the normalizer must stay in sync.
func (pb *PromptBuilder) BuildBulkAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Based on a careful comparison of the job description and the resume, please provide a concise evaluation. Your evaluation should include:

1. **Suitability Assessment:** A definitive statement declaring the candidate as either "Suitable" or "Not Suitable" for the role. Base this decision on the overall alignment of skills, experience, and qualifications.

2. **Key Strengths:** Identify 2-3 of the candidate's strongest qualifications, skills, or experiences that directly align with the requirements outlined in the job description. Explain briefly how each strength maps to the job description.

3. **Areas for Improvement:** Identify 1-2 potential areas where the candidate's resume may be lacking or where their experience doesn't fully align with the job description's requirements.

4. **Match Percentage:** Estimate the overall percentage match between the candidate's qualifications and the job requirements. Provide a single percentage value (e.g., "75%%").

Your response should be formatted as follows:

**Suitability Assessment:** [Suitable/Not Suitable]
**Key Strengths:**
- [Strength 1]: [Explanation of alignment]
- [Strength 2]: [Explanation of alignment]
- [Strength 3]: [Explanation of alignment]

**Areas for Improvement:**
- [Area 1]
- [Area 2]

**Match Percentage:** [Percentage]%%

Please provide an objective and data-driven assessment, focusing on concrete skills and experience rather than subjective interpretations.

Here's the job description:
%s

And here's the candidate's resume:
%s`, jobDescription, resumeText)
}
