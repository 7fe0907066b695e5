package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/campaign/internal/game/resource"
)

func ptr[T any](v T) *T { return &v }

func TestParseSkillType(t *testing.T) {
	tests := []struct {
		in   string
		want resource.SkillType
	}{
		{"", resource.SkillRegular},
		{"regular", resource.SkillRegular},
		{" SPECIAL ", resource.SkillSpecial},
	}
	for _, tc := range tests {
		got, err := resource.ParseSkillType(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := resource.ParseSkillType("legendary")
	assert.ErrorIs(t, err, resource.ErrInvalidSkillType)
}

func TestSkill_Validate(t *testing.T) {
	s := resource.Skill{Name: "  Stealth ", Description: ptr("  ")}
	require.NoError(t, s.Validate())
	assert.Equal(t, "Stealth", s.Name)
	assert.Equal(t, resource.SkillRegular, s.Type)
	assert.Nil(t, s.Description)

	blank := resource.Skill{Name: " "}
	assert.ErrorIs(t, blank.Validate(), resource.ErrNameRequired)

	bad := resource.Skill{Name: "x", Type: "weird"}
	assert.ErrorIs(t, bad.Validate(), resource.ErrInvalidSkillType)
}

func TestSkillPatch_Apply(t *testing.T) {
	base := resource.Skill{ID: "1", Name: "Climb", Type: resource.SkillRegular, Page: ptr(10)}

	got, err := resource.SkillPatch{Name: ptr(""), Type: ptr(resource.SkillType("special"))}.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, "Climb", got.Name, "blank name ignored")
	assert.Equal(t, resource.SkillSpecial, got.Type)
	assert.Equal(t, 10, *got.Page)
	assert.Equal(t, resource.SkillRegular, base.Type, "original untouched")

	_, err = resource.SkillPatch{Type: ptr(resource.SkillType("nope"))}.Apply(base)
	assert.ErrorIs(t, err, resource.ErrInvalidSkillType)
}

func TestQualityDrawback(t *testing.T) {
	q := resource.QualityDrawback{Name: "Lame", Cost: -2}
	require.NoError(t, q.Validate())
	assert.True(t, q.IsDrawback())

	q = resource.QualityDrawbackPatch{Cost: ptr(3), Description: ptr("quick on feet")}.Apply(q)
	assert.False(t, q.IsDrawback())
	assert.Equal(t, "quick on feet", *q.Description)
}

func TestQualityDrawback_Property_SignDecidesKind(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cost := rapid.IntRange(-100, 100).Draw(t, "cost")
		q := resource.QualityDrawback{Name: "x", Cost: cost}
		if q.IsDrawback() != (cost < 0) {
			t.Fatalf("cost %d classified wrongly", cost)
		}
	})
}
