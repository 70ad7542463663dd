package service

import (
	"fmt"
	"strings"

	"github.com/nardos-mesfin/exam-grader-api/internal/model"
)

// Prompt text sent to the vision model. The scan prompt is identical for
// every page of an answer key; student papers use the grading prompt for
// page one (the only call that carries the answer key) and the OCR-only
// prompt for every later page.

const scanPrompt = `You are an expert Optical Character Recognition (OCR) system for educators. Analyze the provided image of a handwritten answer key.
**INSTRUCTIONS:**
1. Identify each question number and its corresponding answer.
2. For each answer, determine its most likely question type. The valid types are "MCQ" (for single letters like A, B, C, D), "TF" (for "True", "False", "T", "F"), and "SHORT" (for any other word or phrase).
3. You MUST respond with ONLY a valid JSON object. Do not include any other text, explanations, or markdown formatting like ` + "```json" + `.
4. The JSON object must have a single key named "questions".
5. The value of "questions" must be an array of objects.
6. Each object must have two keys: "answer" (string) and "type" (string, one of "MCQ", "TF", or "SHORT").
Example of your required JSON output:
{ "questions": [ { "answer": "C", "type": "MCQ" }, { "answer": "False", "type": "TF" } ] }`

const ocrOnlyPrompt = `You are an AI Grading Assistant. You are processing page 2 or later of a multi-page exam. The answer key is not provided for this page.

**INSTRUCTIONS:**
1. Read the student's handwritten answers for each question on this page, in order.
2. You MUST respond with ONLY a valid JSON object.
3. The JSON object must have a key named "grades" which is an array of objects.
4. Each object in the "grades" array must have ONLY two keys: "student_answer" (string) and "score" (integer, which should always be 0 for this page).`

// gradingPrompt builds the combined name-extraction and grading prompt for
// the first page of a student paper. The answer key is serialized as one
// "Question N: <correct answer> (<marks> marks)" line per question, in
// question_number order.
func gradingPrompt(questions []model.Question) string {
	lines := make([]string, 0, len(questions))
	for i, q := range questions {
		lines = append(lines, fmt.Sprintf("Question %d: %s (%d marks)", i+1, q.CorrectAnswer, q.Marks))
	}

	return fmt.Sprintf(`You are an AI Exam Grading Assistant. Your task is to analyze an image of a student's handwritten answers, extract their name, and grade their answers against the provided key.

**ANSWER KEY:**
%s

**INSTRUCTIONS:**
1. First, locate and extract the student's full name from the top of the exam paper.
2. Read the student's handwritten answers for each question on this page.
3. Grade the answers against the answer key. Be lenient with minor spelling mistakes.
4. You MUST respond with ONLY a valid JSON object. The JSON object must have a key named "student_name" (string) and a key named "grades" (an array of objects with "student_answer" and "score" keys).`,
		strings.Join(lines, "\n"))
}
