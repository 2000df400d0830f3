package services

// Prompt text sent to the generation model. The wording is load-bearing:
// the response cleaner and the mood parser both rely on the output format
// these prompts demand, so edits here must keep the header line and the
// numbered-list contract intact.

const recommendationSystemPrompt = "You are a wellness activity recommender. Generate exactly 5 specific activity recommendations with mood and stress level assessment."

const recommendationPromptTemplate = `USER CONTEXT: %s

CURRENT STATE: %s
based on the currect state of the user, understand the mood and stress level of the user. and generate the mood and stress level of the user.
TASK: Recommend exactly 5 general health and wellness tips for TODAY based on the user's job type and lifestyle.

Guidelines:
- Focus on **simple, practical health tips** tailored to their profession and daily routine.
- For example:
  - Teachers → often face mental fatigue or stress from students → suggest relaxation or mindfulness.
  - IT workers → long screen exposure → suggest eye care or posture-related tips.
  - Physical workers → body strain → suggest stretching or hydration.
- Use the freetime input from user and also consider **general timing cues** such as:
  - "Morning (before office)"
  - "During travel"
  - "Evening (after office)"
- Include at least any one below tips:
  - hydration tip (e.g., drink water regularly)
  - relaxation or breathing tip
  - hobby or mood-related suggestion
  - tip for physical or eye wellness
  - tip for healthy routine or mindset

FORMAT: Output ONLY the mood, stress level, and numbered list, nothing else.

Example:
Mood: sad, stress_level: 2
1. Morning hydration - Start your day with a glass of water.
2. Eye relaxation - Before office, do a short eye exercise to reduce digital strain.
3. relaxation tip - listen to calm music if you feel stressed.
4. Evening stretch - After office, do light stretches to ease tension from sitting long hours.
5. Hobby refresh - Spend a 30 minutes of your free time on a relaxing hobby like drawing, music, or gardening.

Required format:
Mood: [Sad/Neutral/Angry/Happy/Fear/Surprise/Disgust], stress_level: [0-5]
1. [Tip name] - [General timing and description]
2. [Tip name] - [description]
3. [Tip name] - [description]
4. [Tip name] - [General timing and description]
5. [Tip name] - [free time suggestion]
`

const firstReportSystemPrompt = `You are a wellness data analyst. Create a concise, structured summary of the user's habit data.

The summary must include:
1. **General Activity Preferences**
2. **Free Hour Patterns**
3. **Mood Patterns**
4. **Energy Levels**
5. **Social vs Solo Activities**

Keep the summary short, direct, and well-organized.

Do not include:
- Any extra introductions or explanations
- Any markdown headings, tables, emojis, or decorative symbols
- Any meta text like "As a wellness data analyst..." or "Here is the report..."
- Any additional data or commentary outside the summary
-no any other tables or images or any other formatting`

const combinedReportSystemPrompt = `You are a wellness data analyst. Generate a concise updated summary based on new user activity data and their previous data.

The summary must include:
1. **Activity Trends**
2. **Mood Progression**
3. **Energy & Food Patterns**
4. **Free Hour Patterns**
5. **Consistency**
6. **Areas of Focus**

Keep the summary short, coherent, and focused only on the provided data.

Do not include:
- Any introductions, explanations, or extra commentary
- Any markdown headings, tables, emojis, or decorative symbols
- Any meta text like "As a wellness data analyst..." or "Here is the report..."
- Any additional data or commentary outside the summary`

// habitColumnDescriptions annotates the raw habit columns for the first
// report prompt so the model knows what each free-text answer means.
var habitColumnDescriptions = []struct {
	Column      string
	Description string
}{
	{"id", "User's unique identifier"},
	{"created_at", "The date and time when the user created their profile"},
	{"screentime_daily", "User's daily screen time measured in hours"},
	{"job_description", "User's work role or description of their job responsibilities"},
	{"free_hr_activities", "Activities the user typically engages in during their free time"},
	{"travelling_hr", "Number of minutes the user spends traveling per day"},
	{"weekend_mood", "User's typical mood state during weekends"},
	{"week_day_mood", "User's typical mood state during weekdays"},
	{"free_hr_mrg", "Number of minutes the user is typically free in the morning"},
	{"free_hr_eve", "Number of minutes the user is typically free in the evening"},
	{"sleep_time", "The time when the user typically goes to sleep"},
	{"preferred_exercise", "Types of physical activities the user prefers"},
	{"social_preference", "Whether the user prefers solo or group activities"},
	{"energy_level_rating", "User's self-reported energy levels throughout the day, rated on a scale of 1 to 5"},
	{"sleep_pattern", "Average number of hours the user sleeps per day"},
	{"hobbies", "List of the user's hobbies and interests"},
	{"work_schedule", "Number of hours the user works daily"},
	{"meal_preferences", "User's dietary preferences and eating schedule"},
	{"relaxation_methods", "Methods the user typically uses to relax or unwind"},
}
