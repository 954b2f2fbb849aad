package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "goal", KindGoal.String())
	assert.Equal(t, "solution", KindSolution.String())
	assert.Equal(t, "implementation", KindImplementation.String())
	assert.Equal(t, "verification", KindVerification.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNodeInterface(t *testing.T) {
	nodes := []Node{
		Goal{Base: Base{Tag: "G-1", Title: "g"}},
		Solution{Base: Base{Tag: "S-1", Title: "s"}},
		Implementation{Base: Base{Tag: "I-1", Title: "i"}},
		Verification{Base: Base{Tag: "V-1", Title: "v"}},
	}
	kinds := []Kind{KindGoal, KindSolution, KindImplementation, KindVerification}
	for i, n := range nodes {
		assert.Equal(t, kinds[i], n.Kind())
		assert.NotEmpty(t, n.ID())
		assert.NotEmpty(t, n.Name())
	}
}

func TestImplementationFiles(t *testing.T) {
	impl := Implementation{
		CodeFiles: []string{"a.py", "b.py"},
		TestFiles: []string{"test_a.py"},
	}
	assert.Equal(t, []string{"a.py", "b.py", "test_a.py"}, impl.Files())

	assert.Empty(t, Implementation{}.Files())
}

func TestVerificationClassValid(t *testing.T) {
	for _, c := range []VerificationClass{VerifyAcceptance, VerifySystem, VerifyIntegration, VerifyUnit} {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, VerificationClass("vibes").Valid())
	assert.False(t, VerificationClass("").Valid())
}
