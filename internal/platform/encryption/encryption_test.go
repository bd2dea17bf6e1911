package encryption

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService("test-secret")
	require.NoError(t, err)
	return s
}

// flipHex flips the low bit of the first byte of a hex string.
func flipHex(t *testing.T, s string) string {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	b[0] ^= 0x01
	return hex.EncodeToString(b)
}

func TestService_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestService(t)
	inputs := []string{"a", "Jane Doe", "Zürich, CH", "senior", `["Go","SQL"]`, "日本語のテキスト"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			env, err := s.Encrypt(in)
			require.NoError(t, err)
			require.NotNil(t, env)

			out, err := s.Decrypt(env)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestService_EmptyInput(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	env, err := s.Encrypt("")
	assert.NoError(t, err)
	assert.Nil(t, env)

	out, err := s.Decrypt(nil)
	assert.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestService_FreshIVPerCall(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	a, err := s.Encrypt("same input")
	require.NoError(t, err)
	b, err := s.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a.IV, b.IV)
	assert.NotEqual(t, a.Data+a.Tag, b.Data+b.Tag)

	iv, err := hex.DecodeString(a.IV)
	require.NoError(t, err)
	assert.Len(t, iv, 16)
	tag, err := hex.DecodeString(a.Tag)
	require.NoError(t, err)
	assert.Len(t, tag, 16)
}

func TestService_Tampering(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	tests := []struct {
		name   string
		tamper func(env Envelope) Envelope
	}{
		{"data", func(env Envelope) Envelope { env.Data = flipHex(t, env.Data); return env }},
		{"iv", func(env Envelope) Envelope { env.IV = flipHex(t, env.IV); return env }},
		{"tag", func(env Envelope) Envelope { env.Tag = flipHex(t, env.Tag); return env }},
		{"truncated tag", func(env Envelope) Envelope { env.Tag = env.Tag[:8]; return env }},
		{"non-hex data", func(env Envelope) Envelope { env.Data = "zz"; return env }},
		{"empty iv", func(env Envelope) Envelope { env.IV = ""; return env }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := s.Encrypt("sensitive value")
			require.NoError(t, err)

			bad := tt.tamper(*env)
			out, err := s.Decrypt(&bad)

			assert.ErrorIs(t, err, ErrDecryption)
			assert.Empty(t, out)
		})
	}
}

func TestService_WrongKey(t *testing.T) {
	t.Parallel()

	a := newTestService(t)
	b, err := NewService("another-secret")
	require.NoError(t, err)

	env, err := a.Encrypt("hello")
	require.NoError(t, err)

	_, err = b.Decrypt(env)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestNewService_DevelopmentFallback(t *testing.T) {
	t.Parallel()

	a, err := NewService("")
	require.NoError(t, err)
	b, err := NewService(DevelopmentKey)
	require.NoError(t, err)

	env, err := a.Encrypt("portable")
	require.NoError(t, err)
	out, err := b.Decrypt(env)
	require.NoError(t, err)
	assert.Equal(t, "portable", out)
}

func TestField_ScanAndValue(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	t.Run("null", func(t *testing.T) {
		var f Field
		require.NoError(t, f.Scan(nil))
		assert.True(t, f.IsZero())

		v, err := f.Value()
		assert.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("legacy plain text", func(t *testing.T) {
		var f Field
		require.NoError(t, f.Scan([]byte("Berlin")))
		assert.False(t, f.IsEncrypted())

		out, err := s.Open(f)
		assert.NoError(t, err)
		assert.Equal(t, "Berlin", out)
	})

	t.Run("json that is not an envelope stays plain", func(t *testing.T) {
		var f Field
		require.NoError(t, f.Scan(`["Go"]`))
		assert.False(t, f.IsEncrypted())
	})

	t.Run("envelope survives a column round trip", func(t *testing.T) {
		sealed, err := s.Seal("Ada Lovelace")
		require.NoError(t, err)
		require.True(t, sealed.IsEncrypted())

		v, err := sealed.Value()
		require.NoError(t, err)

		var scanned Field
		require.NoError(t, scanned.Scan(v))
		assert.True(t, scanned.IsEncrypted())

		out, err := s.Open(scanned)
		assert.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", out)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var f Field
		assert.Error(t, f.Scan(42))
	})
}

func TestService_UserData(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	in := UserFields{
		Name:            "Jane",
		Location:        "Remote",
		ExperienceLevel: "mid",
		Skills:          []string{"JavaScript", "Node.js"},
	}

	sealed, err := s.EncryptUserData(in)
	require.NoError(t, err)
	assert.True(t, sealed.Name.IsEncrypted())
	assert.True(t, sealed.Location.IsEncrypted())
	assert.True(t, sealed.ExperienceLevel.IsEncrypted())
	assert.True(t, sealed.Skills.IsEncrypted())

	out, err := s.DecryptUserData(sealed)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestService_UserDataOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	sealed, err := s.EncryptUserData(UserFields{Name: "Only Name"})
	require.NoError(t, err)
	assert.True(t, sealed.Name.IsEncrypted())
	assert.True(t, sealed.Location.IsZero())
	assert.True(t, sealed.Skills.IsZero())

	out, err := s.DecryptUserData(sealed)
	require.NoError(t, err)
	assert.Equal(t, "Only Name", out.Name)
	assert.Equal(t, []string{}, out.Skills)
}

func TestService_CorruptSkillsDegradeToEmpty(t *testing.T) {
	t.Parallel()

	s := newTestService(t)

	corrupt, err := s.Seal("not json")
	require.NoError(t, err)

	out, err := s.DecryptUserData(SealedUserFields{Skills: corrupt})
	require.NoError(t, err)
	assert.Equal(t, []string{}, out.Skills)
}

func TestDecodeSkills_RoundTrip(t *testing.T) {
	t.Parallel()

	lists := [][]string{
		{},
		{"Go"},
		{"C++", "C#", "Node.js"},
		{"with \"quotes\"", "comma, inside", "ünïcödé"},
	}

	for _, l := range lists {
		b, err := json.Marshal(l)
		require.NoError(t, err)
		assert.Equal(t, l, DecodeSkills(string(b)))
	}
}
