package domain

import "math"

// MinResponseValue and MaxResponseValue bound the Likert answer scale.
const (
	MinResponseValue = 1
	MaxResponseValue = 5
)

// AggregateDomains computes one DomainResult per input domain, in the
// same order as the domains slice. Stable ordering is a contract:
// dashboards zip the results against the rendered catalog.
//
// The average for a domain uses the answered-count denominator, never
// the total-question count, so unanswered questions do not drag the
// score toward zero. Responses that reference a question outside the
// active set (a question deactivated after being answered) are
// silently excluded rather than treated as an error.
//
// Callers must guarantee at most one response per question id;
// duplicates upstream are undefined behavior.
func AggregateDomains(domains []Domain, questions []Question, responses []Response) []DomainResult {
	questionsByDomain := make(map[string][]Question, len(domains))
	for _, q := range questions {
		questionsByDomain[q.DomainID] = append(questionsByDomain[q.DomainID], q)
	}

	responseByQuestion := make(map[string]Response, len(responses))
	for _, r := range responses {
		responseByQuestion[r.QuestionID] = r
	}

	results := make([]DomainResult, 0, len(domains))
	for _, d := range domains {
		owned := questionsByDomain[d.ID]
		if len(owned) == 0 {
			results = append(results, DomainResult{
				DomainID:   d.ID,
				DomainName: d.Name,
				Maturity:   MaturityNotEvaluated,
			})
			continue
		}

		var sum float64
		var answered int
		for _, q := range owned {
			if r, ok := responseByQuestion[q.ID]; ok {
				sum += float64(r.Value)
				answered++
			}
		}

		var score float64
		if answered > 0 {
			score = round2(sum / float64(answered))
		}

		results = append(results, DomainResult{
			DomainID:          d.ID,
			DomainName:        d.Name,
			Score:             score,
			TotalQuestions:    len(owned),
			AnsweredQuestions: answered,
			Maturity:          MaturityLevelForScore(score),
		})
	}
	return results
}

// OverallScore returns the mean of all domain scores, rounded to two
// decimals. Zero-scored empty domains are included on purpose: an
// unconfigured domain should pull the average down rather than vanish
// silently. Zero domains yields zero.
func OverallScore(results []DomainResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	return round2(sum / float64(len(results)))
}

// Progress returns the percentage of active questions that have a
// response, rounded to the nearest integer. A question counts as
// answered when a response row exists for it; the stored value is
// irrelevant. An empty catalog yields zero.
func Progress(questions []Question, responses []Response) int {
	if len(questions) == 0 {
		return 0
	}

	active := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		active[q.ID] = struct{}{}
	}

	answered := make(map[string]struct{}, len(responses))
	for _, r := range responses {
		if _, ok := active[r.QuestionID]; ok {
			answered[r.QuestionID] = struct{}{}
		}
	}

	return int(math.Round(100 * float64(len(answered)) / float64(len(questions))))
}

// round2 rounds to two decimal places, the precision every score in
// the system is stored and displayed with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
