package account

import (
	"time"

	"github.com/google/uuid"
)

// AdverseMediaFlag is the stored outcome of the adverse media check. It is
// never collapsed to a boolean so "checked clean", "not yet checked" and
// "checked but inconclusive" stay distinguishable.
type AdverseMediaFlag string

const (
	// AdverseMediaUnknown means the search has not run for this account.
	AdverseMediaUnknown AdverseMediaFlag = "unknown"
	// AdverseMediaFound means the search surfaced evidence about the subject.
	AdverseMediaFound AdverseMediaFlag = "found"
	// AdverseMediaNotFound means the search completed with no evidence.
	AdverseMediaNotFound AdverseMediaFlag = "not_found"
	// AdverseMediaIndeterminate means the search completed but the verdict
	// could not be interpreted.
	AdverseMediaIndeterminate AdverseMediaFlag = "indeterminate"
)

// DocumentFields is the structured record extracted from an ID document by the
// vision provider. The JSON tags match the provider's extraction schema.
type DocumentFields struct {
	IDNumber  string `json:"idNumber"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Sex       string `json:"sex"`
	Address   string `json:"address"`

	ElectronicReplica bool `json:"electronicReplicaOfID"`
	PaperReplica      bool `json:"paperReplicaOfID"`
	PictureIsClear    bool `json:"pictureIsClear"`
	Tampered          bool `json:"idImageIsTampered"`
}

// Account is the durable per-user record accumulating submitted and derived
// identity data. Created at session start, mutated incrementally by the
// onboarding controller and the background verification pipeline, never
// deleted by this service.
type Account struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Email       string
	SSN         string
	Name        string
	Address     string
	DocumentURL string

	DocumentFields *DocumentFields
	AdverseMedia   AdverseMediaFlag
}
