package library

import (
	"strings"

	"github.com/google/uuid"
	models "queenzz/internal/domain/models/library"
)

// RecordFlashcardResult drops a card from the failed list when answered
// correctly and adds it (once) when failed
func RecordFlashcardResult(data *models.AppData, cardID string, correct bool) (*models.AppData, error) {
	return updateActive(data, func(lib *models.Library) error {
		idx := -1
		for i, c := range lib.FailedFlashcards {
			if c.ID == cardID {
				idx = i
				break
			}
		}
		if correct {
			if idx >= 0 {
				lib.FailedFlashcards = append(lib.FailedFlashcards[:idx], lib.FailedFlashcards[idx+1:]...)
			}
			return nil
		}
		if idx >= 0 {
			return nil
		}
		card, ok := findCard(lib.Items, cardID)
		if !ok {
			return errNotFound("flashcard", cardID)
		}
		lib.FailedFlashcards = append(lib.FailedFlashcards, card)
		return nil
	})
}

func findCard(items []*models.Item, cardID string) (models.Flashcard, bool) {
	for _, item := range Flatten(items) {
		if item.Type != models.ItemDeck {
			continue
		}
		for _, c := range item.Cards {
			if c.ID == cardID {
				return c, true
			}
		}
	}
	return models.Flashcard{}, false
}

// SetPausedQuiz stores (or with nil clears) the paused quiz run
func SetPausedQuiz(data *models.AppData, state *models.PausedQuizState) (*models.AppData, error) {
	return updateActive(data, func(lib *models.Library) error {
		if state == nil {
			lib.PausedQuiz = nil
			return nil
		}
		c := state.Clone()
		lib.PausedQuiz = &c
		return nil
	})
}

// SetStudyPlan replaces the planner configuration and its sessions
func SetStudyPlan(data *models.AppData, cfg *models.StudyPlanConfig, sessions []models.StudyPlanSession) (*models.AppData, error) {
	return updateActive(data, func(lib *models.Library) error {
		if cfg == nil {
			lib.StudyPlanConfig = nil
		} else {
			c := *cfg
			c.QuizIDs = append([]string{}, cfg.QuizIDs...)
			lib.StudyPlanConfig = &c
		}
		lib.StudyPlanSessions = make([]models.StudyPlanSession, len(sessions))
		for i, s := range sessions {
			if s.ID == "" {
				s.ID = uuid.NewString()
			}
			s.QuizIDs = append([]string{}, s.QuizIDs...)
			lib.StudyPlanSessions[i] = s
		}
		return nil
	})
}

// SaveMnemonic inserts or replaces a rule by id; the saved rule goes last
func SaveMnemonic(data *models.AppData, rule models.MnemonicRule) (*models.AppData, *models.MnemonicRule, error) {
	if strings.TrimSpace(rule.Text) == "" {
		return nil, nil, errInvalid("mnemonic text is required")
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	next, err := updateActive(data, func(lib *models.Library) error {
		kept := make([]models.MnemonicRule, 0, len(lib.Mnemonics)+1)
		for _, m := range lib.Mnemonics {
			if m.ID != rule.ID {
				kept = append(kept, m)
			}
		}
		lib.Mnemonics = append(kept, rule)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return next, &rule, nil
}

// DeleteMnemonic removes a rule by id
func DeleteMnemonic(data *models.AppData, ruleID string) (*models.AppData, error) {
	return updateActive(data, func(lib *models.Library) error {
		kept := make([]models.MnemonicRule, 0, len(lib.Mnemonics))
		for _, m := range lib.Mnemonics {
			if m.ID != ruleID {
				kept = append(kept, m)
			}
		}
		lib.Mnemonics = kept
		return nil
	})
}
