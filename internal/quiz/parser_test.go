package quiz

import "testing"

func TestParseEmbeddedJSON(t *testing.T) {
	response := `Here is your quiz:
{
  "questions": [
    {
      "question": "What does microgravity do to bone density?",
      "options": {"A": "Increases it", "B": "Decreases it", "C": "No change", "D": "Doubles it"},
      "correct": "B",
      "explanation": "Bone resorption outpaces formation in orbit."
    },
    {
      "question": "Which organism is a common model in spaceflight studies?",
      "options": {"A": "Arabidopsis", "B": "Elephant", "C": "Oak tree", "D": "Coral"},
      "correct": "A",
      "explanation": "Arabidopsis flies on most plant experiments."
    }
  ]
}
Good luck!`

	quiz := Parse(response)

	if len(quiz.Questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(quiz.Questions))
	}

	q := quiz.Questions[0]
	if q.Question != "What does microgravity do to bone density?" {
		t.Errorf("Question: got %q", q.Question)
	}
	if q.Correct != "B" {
		t.Errorf("Correct: got %q, want B", q.Correct)
	}
	if q.Options["D"] != "Doubles it" {
		t.Errorf("Option D: got %q", q.Options["D"])
	}
	if q.Explanation != "Bone resorption outpaces formation in orbit." {
		t.Errorf("Explanation: got %q", q.Explanation)
	}
}

func TestParseOutlineFallback(t *testing.T) {
	response := `1. What happens to plant roots in orbit?
A. They grow randomly
B) They stop growing
C. They grow downward
D. They fuse together
The answer is C
2. How long was the study?
A. One week
B. Six months
C. Two years
D. A decade
The answer is B`

	quiz := Parse(response)

	if len(quiz.Questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(quiz.Questions))
	}

	first := quiz.Questions[0]
	if first.Question != "What happens to plant roots in orbit?" {
		t.Errorf("Question: got %q", first.Question)
	}
	if first.Options["A"] != "They grow randomly" {
		t.Errorf("Option A: got %q", first.Options["A"])
	}
	if first.Options["B"] != "They stop growing" {
		t.Errorf("Option B: got %q", first.Options["B"])
	}
	if first.Correct != "C" {
		t.Errorf("Correct: got %q, want C", first.Correct)
	}
	if first.Explanation != "No explanation provided" {
		t.Errorf("Explanation: got %q", first.Explanation)
	}

	if quiz.Questions[1].Correct != "B" {
		t.Errorf("Second correct: got %q, want B", quiz.Questions[1].Correct)
	}
}

func TestParseUndecodableJSONFallsThrough(t *testing.T) {
	// Balanced braces but not valid JSON; the outline parser still finds
	// the numbered items after it
	response := "{not valid json}\n1. What is studied here in this work?\nA. Bones\nB. Plants\nThe answer is B"

	quiz := Parse(response)

	if len(quiz.Questions) != 1 {
		t.Fatalf("Expected 1 question from outline fallback, got %d", len(quiz.Questions))
	}
	if quiz.Questions[0].Correct != "B" {
		t.Errorf("Correct: got %q, want B", quiz.Questions[0].Correct)
	}
}

func TestParseNothingUsable(t *testing.T) {
	quiz := Parse("Sorry, I cannot help with that topic.")

	if len(quiz.Questions) != 0 {
		t.Errorf("Expected 0 questions, got %d", len(quiz.Questions))
	}
}
