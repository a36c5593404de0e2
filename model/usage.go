package model

import "time"

// Usage accumulates token counts and latency for the current process.
type Usage struct {
	Turns             int
	InputTokens       int
	OutputTokens      int
	TotalResponseTime time.Duration
}

func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

func (u *Usage) add(resp *ModelResponse) {
	u.Turns++
	u.InputTokens += resp.InputTokens
	u.OutputTokens += resp.OutputTokens
	u.TotalResponseTime += resp.Latency()
}

// AverageResponseTime is the mean latency per turn, zero before the first.
func (u Usage) AverageResponseTime() time.Duration {
	if u.Turns == 0 {
		return 0
	}
	return u.TotalResponseTime / time.Duration(u.Turns)
}
