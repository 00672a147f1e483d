package bridge

import (
	"testing"

	"github.com/iov-one/bridge/errors"
)

func TestMetadataValidate(t *testing.T) {
	cases := map[string]struct {
		meta    *Metadata
		wantErr *errors.Error
	}{
		"valid":       {meta: &Metadata{Schema: 1}},
		"nil":         {meta: nil, wantErr: errors.ErrEmpty},
		"zero schema": {meta: &Metadata{}, wantErr: errors.ErrSchema},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.meta.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestMetadataMarshal(t *testing.T) {
	raw, err := Marshal(&Metadata{Schema: 7})
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got Metadata
	if err := Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if got.Schema != 7 {
		t.Fatalf("unexpected schema: %d", got.Schema)
	}
	if cpy := got.Copy(); cpy == &got || cpy.Schema != 7 {
		t.Fatal("copy must be a new instance with the same content")
	}
}
