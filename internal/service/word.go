package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/stanhub/blog/internal/model"
	"github.com/stanhub/blog/internal/store"
)

// WordInput carries the fields of a new word entry.
type WordInput struct {
	VocabularyID     string
	Text             string
	MeaningInChinese string
	MeaningInEnglish string
	PartOfSpeech     string
}

// WordUpdate is a partial update of a word entry.
type WordUpdate struct {
	Text             *string
	MeaningInChinese *string
	MeaningInEnglish *string
	PartOfSpeech     *string
}

// WordService manages the word entries of VOCABULARY content. All
// mutations are scoped to the vocabulary owner.
type WordService struct {
	store store.Store
}

func NewWordService(s store.Store) *WordService {
	return &WordService{store: s}
}

var wordLimits = FieldLimits{
	"text":             200,
	"meaningInChinese": 128,
	"meaningInEnglish": 128,
	"partOfSpeech":     32,
}

// SaveWord adds a word to a vocabulary the caller owns.
func (s *WordService) SaveWord(ctx context.Context, in WordInput, callerID int64) (*model.Word, error) {
	if in.Text == "" {
		return nil, &ValidationError{Field: "text", Message: "must not be empty"}
	}
	if err := wordLimits.CheckAll(map[string]string{
		"text":             in.Text,
		"meaningInChinese": in.MeaningInChinese,
		"meaningInEnglish": in.MeaningInEnglish,
		"partOfSpeech":     in.PartOfSpeech,
	}); err != nil {
		return nil, err
	}
	if err := s.checkVocabulary(ctx, in.VocabularyID, callerID); err != nil {
		return nil, err
	}

	word := &model.Word{
		VocabularyID:     in.VocabularyID,
		Text:             in.Text,
		MeaningInChinese: in.MeaningInChinese,
		MeaningInEnglish: in.MeaningInEnglish,
		PartOfSpeech:     in.PartOfSpeech,
	}
	if err := s.store.CreateWord(ctx, word); err != nil {
		return nil, err
	}
	return word, nil
}

// UpdateWord applies the non-nil fields of in to an existing word.
func (s *WordService) UpdateWord(ctx context.Context, id int64, in WordUpdate, callerID int64) (*model.Word, error) {
	word, err := s.getOwnedWord(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		word.Text = *in.Text
	}
	if in.MeaningInChinese != nil {
		word.MeaningInChinese = *in.MeaningInChinese
	}
	if in.MeaningInEnglish != nil {
		word.MeaningInEnglish = *in.MeaningInEnglish
	}
	if in.PartOfSpeech != nil {
		word.PartOfSpeech = *in.PartOfSpeech
	}

	if word.Text == "" {
		return nil, &ValidationError{Field: "text", Message: "must not be empty"}
	}
	if err := wordLimits.CheckAll(map[string]string{
		"text":             word.Text,
		"meaningInChinese": word.MeaningInChinese,
		"meaningInEnglish": word.MeaningInEnglish,
		"partOfSpeech":     word.PartOfSpeech,
	}); err != nil {
		return nil, err
	}

	if err := s.store.SaveWord(ctx, word); err != nil {
		return nil, err
	}
	return word, nil
}

// GetWord returns one word entry, without any ownership restriction.
func (s *WordService) GetWord(ctx context.Context, id int64) (*model.Word, error) {
	word, err := s.store.GetWord(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "word", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

// ListByVocabulary returns every word of one vocabulary in insertion
// order.
func (s *WordService) ListByVocabulary(ctx context.Context, vocabularyID string) ([]*model.Word, error) {
	return s.store.ListWordsByVocabulary(ctx, vocabularyID)
}

// DeleteWord removes a word from a vocabulary the caller owns.
func (s *WordService) DeleteWord(ctx context.Context, id int64, callerID int64) error {
	if _, err := s.getOwnedWord(ctx, id, callerID); err != nil {
		return err
	}
	return s.store.DeleteWord(ctx, id)
}

func (s *WordService) getOwnedWord(ctx context.Context, id int64, callerID int64) (*model.Word, error) {
	word, err := s.store.GetWord(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "word", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkVocabulary(ctx, word.VocabularyID, callerID); err != nil {
		return nil, err
	}
	return word, nil
}

func (s *WordService) checkVocabulary(ctx context.Context, vocabularyID string, callerID int64) error {
	general, err := getOwnedContent(ctx, s.store, vocabularyID, callerID)
	if err != nil {
		return err
	}
	if general.Kind != model.KindVocabulary {
		return &ValidationError{Field: "vocabularyId", Message: "content is not a vocabulary"}
	}
	return nil
}
