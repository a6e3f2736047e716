package dto

type StatsResponse struct {
	ActiveSessions   int   `json:"active_sessions"`
	SessionsStarted  int64 `json:"sessions_started"`
	FAQAnswers       int64 `json:"faq_answers"`
	AIAnswers        int64 `json:"ai_answers"`
	AIFallbacks      int64 `json:"ai_fallbacks"`
	AIErrors         int64 `json:"ai_errors"`
	Resets           int64 `json:"resets"`
	PackageSearches  int64 `json:"package_searches"`
	PackagesRevealed int64 `json:"packages_revealed"`
}
