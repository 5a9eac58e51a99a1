package quiz

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"supernova/internal/ai"
	"supernova/internal/errs"
	"supernova/internal/logger"
	parser "supernova/internal/quiz"
	"supernova/pkg/validation"

	"github.com/sirupsen/logrus"
)

var (
	// ErrGenerationInProgress rejects a second generation while one is
	// already running for the same identity
	ErrGenerationInProgress = errors.New("quiz generation already in progress")

	// ErrEmptyQuiz means the assistant reply yielded no parseable
	// questions. The caller may simply retry.
	ErrEmptyQuiz = errors.New("no quiz questions could be generated, please try again")
)

// Session is one identity's active quiz
type Session struct {
	PaperTitle string
	Quiz       *parser.Quiz
	Answers    map[int]string
}

// QuestionResult is the per-question breakdown in the final score
type QuestionResult struct {
	Question    string `json:"question"`
	Selected    string `json:"selected"`
	Correct     string `json:"correct"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// Results is the scored outcome of a quiz
type Results struct {
	PaperTitle string           `json:"paper_title"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Answered   int              `json:"answered"`
	Questions  []QuestionResult `json:"questions"`
}

// QuizService generates quizzes about papers and tracks answers per
// identity. Generation is single-flight: one in-flight generation per
// identity at a time.
type QuizService struct {
	provider  ai.Provider
	sessions  *ai.SessionRegistry
	validator *validation.SearchRequestValidator

	mu         sync.Mutex
	generating map[string]bool
	active     map[string]*Session
}

// NewQuizService creates a new QuizService
func NewQuizService(provider ai.Provider, sessions *ai.SessionRegistry) *QuizService {
	return &QuizService{
		provider:   provider,
		sessions:   sessions,
		validator:  validation.NewSearchRequestValidator(),
		generating: make(map[string]bool),
		active:     make(map[string]*Session),
	}
}

// Generate asks the assistant for a quiz about a paper and stores it as the
// identity's active quiz, replacing any previous one
func (s *QuizService) Generate(username, paperTitle string) (*parser.Quiz, error) {
	if err := s.validator.ValidatePaperTitle(paperTitle); err != nil {
		return nil, err
	}
	paperTitle = strings.TrimSpace(paperTitle)

	s.mu.Lock()
	if s.generating[username] {
		s.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	s.generating[username] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.generating, username)
		s.mu.Unlock()
	}()

	response, err := s.provider.Send(ai.QuizPrompt(paperTitle), s.sessions.SessionFor(username), ai.PersonaResearcher)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	quiz := parser.Parse(response)
	if len(quiz.Questions) == 0 {
		logger.Log.WithField("paper_title", paperTitle).Warn("Quiz response produced no questions")
		return nil, ErrEmptyQuiz
	}

	s.mu.Lock()
	s.active[username] = &Session{
		PaperTitle: paperTitle,
		Quiz:       quiz,
		Answers:    make(map[int]string),
	}
	s.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"username":       username,
		"paper_title":    paperTitle,
		"question_count": len(quiz.Questions),
	}).Info("Quiz generated")

	return quiz, nil
}

// RecordAnswer stores the selected option for one question of the active
// quiz. Answering the same question again overwrites the previous choice.
func (s *QuizService) RecordAnswer(username string, questionIndex int, choice string) error {
	choice = strings.ToUpper(strings.TrimSpace(choice))
	if len(choice) != 1 || choice < "A" || choice > "D" {
		return errs.NewValidation("choice", "must be one of A, B, C, D")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.active[username]
	if !ok {
		return &errs.NotFoundError{Resource: "quiz"}
	}

	if questionIndex < 0 || questionIndex >= len(session.Quiz.Questions) {
		return errs.NewValidation("question_index", fmt.Sprintf("must be between 0 and %d", len(session.Quiz.Questions)-1))
	}

	session.Answers[questionIndex] = choice
	return nil
}

// Results scores the active quiz against the recorded answers
func (s *QuizService) Results(username string) (*Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.active[username]
	if !ok {
		return nil, &errs.NotFoundError{Resource: "quiz"}
	}

	results := &Results{
		PaperTitle: session.PaperTitle,
		Total:      len(session.Quiz.Questions),
		Answered:   len(session.Answers),
	}

	for i, q := range session.Quiz.Questions {
		selected := session.Answers[i]
		correct := selected != "" && selected == q.Correct
		if correct {
			results.Score++
		}
		results.Questions = append(results.Questions, QuestionResult{
			Question:    q.Question,
			Selected:    selected,
			Correct:     q.Correct,
			IsCorrect:   correct,
			Explanation: q.Explanation,
		})
	}

	return results, nil
}

// Clear drops the identity's active quiz and answers
func (s *QuizService) Clear(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, username)
}
