package prompts

const classifySpec = `Respond with a JSON object matching this exact structure:

{
  "label": "<theory|design|code|planning>",
  "complexity": "<simple|medium|complex>",
  "rationale": "<explanation>"
}

Field constraints:
- label: Exactly one of the four category values, lowercase.
- complexity: Categorical assessment of how involved a good answer is.
- rationale: Brief explanation of why this category and complexity fit
  the query, noting any category overlap you resolved.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Choose exactly one label; never invent new categories`

const theorySpec = `Respond with a JSON object matching this exact structure:

{
  "topic": "<topic name>",
  "explanation": "<detailed explanation>",
  "key_concepts": ["<concept1>", "<concept2>"],
  "examples": ["<example1>", "<example2>"]
}

Field constraints:
- topic: Short name of the concept being explained.
- explanation: Clear, self-contained explanation of the topic.
- key_concepts: Distinct concepts a learner should retain, most
  important first.
- examples: Concrete examples illustrating the topic. May be empty when
  no example adds value.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Keep the explanation free of markdown headings; plain paragraphs only`

const designSpec = `Respond with a JSON object matching this exact structure:

{
  "patterns": ["<pattern1>", "<pattern2>"],
  "recommendation": "<recommended approach>",
  "pros": ["<advantage1>"],
  "cons": ["<cost1>"]
}

Field constraints:
- patterns: Established design patterns applicable to the question.
- recommendation: The overall architecture recommendation, stated
  decisively.
- pros: Genuine advantages of the recommended approach.
- cons: Genuine costs and risks of the recommended approach.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Every listed pattern must be referenced by the recommendation`

const codeSpec = `Respond with a JSON object matching this exact structure:

{
  "problem": "<problem statement>",
  "explanation": "<why the solution works>",
  "code": "<complete working code>",
  "complexity": "<e.g. O(n)>"
}

Field constraints:
- problem: The problem restated in one or two sentences.
- explanation: Why this solution is correct and how it works.
- code: Complete, runnable code, including any imports it needs.
- complexity: Time complexity of the core algorithm in big-O form.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Escape the code field correctly as a JSON string`

const planningSpec = `Respond with a JSON object matching this exact structure:

{
  "goal": "<the main goal>",
  "steps": ["<title> - <description>", "<title> - <description>"],
  "timeline": "<estimated timeline>",
  "resources": ["<resource1>"]
}

Field constraints:
- goal: The main goal of the plan in one sentence.
- steps: Ordered steps, each formatted as a short title, a hyphen, and a
  description of what to do.
- timeline: Realistic overall timeline estimate.
- resources: Resources the plan depends on. May be empty.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Steps must be actionable; no placeholder steps like "do research"`

var specs = map[Stage]string{
	StageClassify: classifySpec,
	StageTheory:   theorySpec,
	StageDesign:   designSpec,
	StageCode:     codeSpec,
	StagePlanning: planningSpec,
}

// Spec returns the hardcoded specification for a pipeline stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
