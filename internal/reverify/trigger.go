package reverify

import (
	"kycshare/internal/ledger/models"
	id "kycshare/pkg/domain"
)

// Trigger evaluates the probabilistic re-verification decision.
type Trigger struct {
	source DrawSource
}

// NewTrigger builds a trigger over the given draw source, defaulting to
// BlakeDraw when nil.
func NewTrigger(source DrawSource) *Trigger {
	if source == nil {
		source = BlakeDraw{}
	}
	return &Trigger{source: source}
}

// Evaluate draws r in [0,100] keyed by the joining account and reports
// whether re-verification fires: r <= repeat_probability. A probability of 0
// can still fire when the draw is exactly 0; a probability of 100 always
// fires.
func (t *Trigger) Evaluate(c *models.Customer, accountID id.AccountID) (int, bool) {
	r := t.source.Draw(c.ID, accountID, c.DocumentHash)
	return r, r <= c.RepeatProbability
}
