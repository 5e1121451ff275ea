package value

import (
	"fmt"

	"github.com/rs/xid"
)

type SubmissionID struct{ xid.ID }

func NewSubmissionID() SubmissionID {
	return SubmissionID{ID: xid.New()}
}

func ParseSubmissionID(s string) (SubmissionID, error) {
	id, err := xid.FromString(s)
	if err != nil {
		return SubmissionID{}, fmt.Errorf("xid.FromString(%s): %w", s, err)
	}

	return SubmissionID{ID: id}, nil
}
