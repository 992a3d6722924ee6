package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	leaf := &Node{Kind: KindText, Value: "x"}

	cyclic := &Node{Kind: KindFrame}
	inner := &Node{Kind: KindFrame, Children: []*Node{cyclic}}
	cyclic.Children = []*Node{inner}

	deep := &Node{Kind: KindFrame}
	cur := deep
	for i := 0; i < 10; i++ {
		next := &Node{Kind: KindFrame}
		cur.Children = []*Node{next}
		cur = next
	}

	tests := []struct {
		name     string
		root     *Node
		maxDepth int
		wantErr  error
	}{
		{
			name: "tree",
			root: &Node{Kind: KindScreen, Children: []*Node{leaf, {Kind: KindButton}}},
		},
		{
			name:    "cycle",
			root:    cyclic,
			wantErr: ErrCycle,
		},
		{
			name:    "shared subtree",
			root:    &Node{Kind: KindScreen, Children: []*Node{leaf, leaf}},
			wantErr: ErrSharedSubtree,
		},
		{
			name:     "too deep",
			root:     deep,
			maxDepth: 5,
			wantErr:  ErrTooDeep,
		},
		{
			name:     "exactly at the limit",
			root:     deep,
			maxDepth: 11,
		},
		{
			name:    "shared screen",
			root:    &Node{Kind: KindMultiScreen, Screens: []*Node{leaf, leaf}},
			wantErr: ErrSharedSubtree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&Document{Root: tt.root}, tt.maxDepth)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateEmpty(t *testing.T) {
	assert.Error(t, Validate(nil, 0))
	assert.Error(t, Validate(&Document{}, 0))
}
