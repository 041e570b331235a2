package usecase

// resumeExtractionPrompt is sent verbatim with every résumé document
const resumeExtractionPrompt = `You are an expert resume parser. Look at this resume and extract information into a structured JSON object.

Return ONLY valid JSON with this exact structure (no markdown, no code blocks, just raw JSON):
{
  "name": "Full Name",
  "title": "Professional Title (e.g., Software Engineer)",
  "email": "email@example.com",
  "subtitle": ["Role 1", "Role 2"],
  "bio": "A brief professional summary (2-3 sentences)",
  "socialLinks": [
    {"platform": "github", "url": "https://github.com/username"},
    {"platform": "linkedin", "url": "https://linkedin.com/in/username"}
  ],
  "experiences": [
    {
      "company": "Company Name",
      "role": "Job Title",
      "location": "City, State",
      "period": "Jan 2022 - Present"
    }
  ],
  "projects": [
    {
      "title": "Project Name",
      "description": "Brief description of the project",
      "technologies": ["Tech1", "Tech2"],
      "github": "https://github.com/...",
      "demo": "https://..."
    }
  ],
  "skills": ["Skill1", "Skill2", "Skill3"]
}

Important:
- Extract real data from the resume
- For missing fields, use empty strings or empty arrays
- For social links, only include platforms: github, linkedin, twitter, email, other
- Keep descriptions concise
- Return ONLY the JSON object, no explanations`
