package service

import (
	"context"

	"henna-assistant-be/internal/dto"
	"henna-assistant-be/pkg/ai/router"
	"henna-assistant-be/pkg/faq"
)

const NoFAQDataMessage = "No FAQ data available."

type IFAQService interface {
	GetAll(ctx context.Context) (*dto.GetFAQsResponse, error)
	Match(ctx context.Context, request *dto.MatchFAQRequest) (*dto.MatchFAQResponse, error)
}

type faqService struct {
	matcher *faq.Matcher
}

func NewFAQService(matcher *faq.Matcher) IFAQService {
	return &faqService{matcher: matcher}
}

func (s *faqService) GetAll(ctx context.Context) (*dto.GetFAQsResponse, error) {
	res := &dto.GetFAQsResponse{Groups: []*dto.FAQGroupDTO{}}
	if s.matcher.Len() == 0 {
		res.Message = NoFAQDataMessage
		return res, nil
	}

	res.Available = true
	for _, g := range faq.GroupByCategory(s.matcher.Entries()) {
		group := &dto.FAQGroupDTO{Category: g.Category}
		for _, e := range g.Entries {
			group.Entries = append(group.Entries, &dto.FAQEntryDTO{Question: e.Question, Answer: e.Answer})
		}
		res.Groups = append(res.Groups, group)
	}
	return res, nil
}

func (s *faqService) Match(ctx context.Context, request *dto.MatchFAQRequest) (*dto.MatchFAQResponse, error) {
	threshold := faq.DefaultThreshold
	if request.Threshold != nil {
		threshold = *request.Threshold
	}

	res := &dto.MatchFAQResponse{Threshold: threshold}
	m, ok := s.matcher.FindBestMatch(request.Query, threshold)
	if !ok {
		return res, nil
	}

	res.Matched = true
	res.Category = m.Category
	res.Question = m.Question
	res.Answer = m.Answer
	res.Score = m.Score
	if m.Answer != "" {
		res.Formatted = router.FormatFAQMatch(m.Question, m.Answer)
	}
	return res, nil
}
