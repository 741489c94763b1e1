package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/dimsuz/build-publish/pkg/domain/model"
)

func TestCarryPolicy(t *testing.T) {
	prev := model.TagRecord{Name: "v1.2.3-internal", BuildNumber: 10}

	name, err := model.CarryPolicy{}.NextName(prev)

	gt.NoError(t, err)
	gt.Value(t, name).Equal("v1.2.3-internal")
}

func TestPatchPolicy(t *testing.T) {
	tests := []struct {
		name    string
		prev    string
		want    string
		wantErr bool
	}{
		{
			name: "Bumps patch component",
			prev: "v1.2.3-internal",
			want: "v1.2.4-internal",
		},
		{
			name: "Bumps without variant suffix",
			prev: "v0.0.1",
			want: "v0.0.2",
		},
		{
			name:    "Rejects non-semver name",
			prev:    "release-2024",
			wantErr: true,
		},
		{
			name:    "Rejects non-numeric patch",
			prev:    "v1.2.x-internal",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := model.PatchPolicy{}.NextName(model.TagRecord{Name: tt.prev, BuildNumber: 1})
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, name).Equal(tt.want)
		})
	}
}

func TestParseVersionPolicy(t *testing.T) {
	policy, err := model.ParseVersionPolicy("")
	gt.NoError(t, err)
	gt.Value(t, policy).Equal(model.CarryPolicy{})

	policy, err = model.ParseVersionPolicy("patch")
	gt.NoError(t, err)
	gt.Value(t, policy).Equal(model.PatchPolicy{})

	_, err = model.ParseVersionPolicy("minor")
	gt.Error(t, err)
}
