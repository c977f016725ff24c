package store

import (
	_ "embed"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/fiscalis/dgi-api/types/business"
)

//go:embed seed.json
var seedData []byte

// Snapshot is the serialized form of the store's state. The embedded
// seed.json plays the role of the database: it is decoded once at startup
// and every restart returns to it.
type Snapshot struct {
	Taxpayers      []business.Taxpayer          `json:"contribuables"`
	Municipalities []business.Municipality      `json:"communes"`
	Establishments []business.Establishment     `json:"etablissements"`
	Declarations   []business.Declaration       `json:"declarations"`
	Payments       []business.Payment           `json:"paiements"`
	Beneficiaries  []business.Beneficiary       `json:"beneficiaires"`
	Notices        []business.AssessmentNotice  `json:"avis_imposition"`
	Enforcements   []business.EnforcementNotice `json:"AMR"`
	Notifications  []business.Notification      `json:"notifications"`
	Counters       map[string]int64             `json:"_counters"`
}

// LoadSeed decodes the embedded seed snapshot.
func LoadSeed() (Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(seedData, &snapshot); err != nil {
		return Snapshot{}, errors.Wrap(err, "decoding embedded seed snapshot")
	}
	if snapshot.Counters == nil {
		snapshot.Counters = map[string]int64{}
	}
	return snapshot, nil
}

// NewFromSeed builds a store initialized from the embedded seed snapshot.
func NewFromSeed() (*Store, error) {
	snapshot, err := LoadSeed()
	if err != nil {
		return nil, err
	}
	return New(snapshot), nil
}
