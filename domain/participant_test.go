package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParticipant_Merge_Preserves_Absent_Fields(t *testing.T) {
	req := require.New(t)
	existing := Participant{
		ID:           "u1",
		Name:         "Alice",
		AvatarConfig: &AvatarConfig{Scale: 1},
	}

	// When a partial update only carries a position
	merged := existing.Merge(Participant{ID: "u1", Position: &Vector3{X: 1}})

	// Then the name and the avatar config are kept
	req.Equal("Alice", merged.Name)
	req.Equal(&AvatarConfig{Scale: 1}, merged.AvatarConfig)
	req.Equal(&Vector3{X: 1}, merged.Position)
}

func TestParticipant_Merge_Never_Changes_ID(t *testing.T) {
	req := require.New(t)

	merged := Participant{ID: "u1"}.Merge(Participant{ID: "other", Name: "Bob"})

	req.Equal("u1", merged.ID)
	req.Equal("Bob", merged.Name)
}

func TestParticipant_Clone_Does_Not_Share_Pointers(t *testing.T) {
	req := require.New(t)
	original := Participant{ID: "u1", AvatarConfig: &AvatarConfig{Scale: 1}, Position: &Vector3{X: 1}}

	clone := original.Clone()
	clone.AvatarConfig.Scale = 3
	clone.Position.X = 9

	req.Equal(1.0, original.AvatarConfig.Scale)
	req.Equal(1.0, original.Position.X)
}

func TestParticipant_StructurallyDiffers(t *testing.T) {
	base := Participant{ID: "a", Avatar: &Avatar{Model: "m1"}, AvatarConfig: &AvatarConfig{Scale: 1}}

	t.Run("position only is not structural", func(t *testing.T) {
		next := base.Merge(Participant{Position: &Vector3{X: 5}})
		require.False(t, base.StructurallyDiffers(next))
	})

	t.Run("scale change is structural", func(t *testing.T) {
		next := base.Merge(Participant{AvatarConfig: &AvatarConfig{Scale: 2}})
		require.True(t, base.StructurallyDiffers(next))
	})

	t.Run("model change is structural", func(t *testing.T) {
		next := base.Merge(Participant{Avatar: &Avatar{Model: "m2"}})
		require.True(t, base.StructurallyDiffers(next))
	})

	t.Run("equal config by value is not structural", func(t *testing.T) {
		next := base.Merge(Participant{AvatarConfig: &AvatarConfig{Scale: 1}})
		require.False(t, base.StructurallyDiffers(next))
	})
}
