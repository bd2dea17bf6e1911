package encryption

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Field is a sensitive column value. It holds either plain text (rows written
// before encryption was enabled) or an encrypted envelope, never both.
// The zero Field is NULL.
type Field struct {
	plain  string
	sealed *Envelope
}

// PlainText wraps an unencrypted value.
func PlainText(s string) Field {
	return Field{plain: s}
}

// Encrypted wraps an envelope. A nil envelope yields the zero Field.
func Encrypted(env *Envelope) Field {
	return Field{sealed: env}
}

// IsEncrypted reports whether f holds an envelope.
func (f Field) IsEncrypted() bool {
	return f.sealed != nil
}

// IsZero reports whether f is NULL.
func (f Field) IsZero() bool {
	return f.sealed == nil && f.plain == ""
}

// Envelope returns the envelope held by f, or nil for plain text.
func (f Field) Envelope() *Envelope {
	return f.sealed
}

// Scan implements sql.Scanner. A JSON object carrying data, iv and tag is
// read as an envelope; anything else is plain text.
func (f *Field) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*f = Field{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("encryption.Field: unsupported scan type %T", src)
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Data != "" && env.IV != "" && env.Tag != "" {
		*f = Encrypted(&env)
		return nil
	}
	*f = PlainText(raw)
	return nil
}

// Value implements driver.Valuer.
func (f Field) Value() (driver.Value, error) {
	if f.sealed != nil {
		b, err := json.Marshal(f.sealed)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	if f.plain == "" {
		return nil, nil
	}
	return f.plain, nil
}

// GormDataType keeps the column as text regardless of dialect.
func (Field) GormDataType() string {
	return "text"
}

// Seal encrypts plaintext into a Field. Empty input yields the zero Field.
func (s *Service) Seal(plaintext string) (Field, error) {
	env, err := s.Encrypt(plaintext)
	if err != nil {
		return Field{}, err
	}
	return Encrypted(env), nil
}

// Open returns the plaintext of f, decrypting it when it holds an envelope.
func (s *Service) Open(f Field) (string, error) {
	if f.sealed == nil {
		return f.plain, nil
	}
	return s.Decrypt(f.sealed)
}

// UserFields are the sensitive user attributes in plain form.
type UserFields struct {
	Name            string
	Location        string
	ExperienceLevel string
	Skills          []string
}

// SealedUserFields are the sensitive user attributes as stored.
type SealedUserFields struct {
	Name            Field
	Location        Field
	ExperienceLevel Field
	Skills          Field
}

// EncryptUserData encrypts name, location, experience level and skills.
// Skills are serialised to a JSON array before encryption; a nil slice stays NULL.
func (s *Service) EncryptUserData(in UserFields) (SealedUserFields, error) {
	var out SealedUserFields
	var err error

	if out.Name, err = s.Seal(in.Name); err != nil {
		return SealedUserFields{}, err
	}
	if out.Location, err = s.Seal(in.Location); err != nil {
		return SealedUserFields{}, err
	}
	if out.ExperienceLevel, err = s.Seal(in.ExperienceLevel); err != nil {
		return SealedUserFields{}, err
	}
	if in.Skills != nil {
		if out.Skills, err = s.SealSkills(in.Skills); err != nil {
			return SealedUserFields{}, err
		}
	}
	return out, nil
}

// SealSkills serialises skills to JSON and encrypts the result.
func (s *Service) SealSkills(skills []string) (Field, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return Field{}, fmt.Errorf("%w: marshal skills: %v", ErrEncryption, err)
	}
	return s.Seal(string(b))
}

// DecryptUserData reverses EncryptUserData. Skills that do not decode as a
// JSON array degrade to an empty list.
func (s *Service) DecryptUserData(in SealedUserFields) (UserFields, error) {
	var out UserFields
	var err error

	if out.Name, err = s.Open(in.Name); err != nil {
		return UserFields{}, err
	}
	if out.Location, err = s.Open(in.Location); err != nil {
		return UserFields{}, err
	}
	if out.ExperienceLevel, err = s.Open(in.ExperienceLevel); err != nil {
		return UserFields{}, err
	}

	raw, err := s.Open(in.Skills)
	if err != nil {
		return UserFields{}, err
	}
	out.Skills = DecodeSkills(raw)
	return out, nil
}

// DecodeSkills parses a JSON array of strings. Empty or malformed input
// yields an empty, non-nil list.
func DecodeSkills(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		slog.Warn("failed to parse skills", "error", err)
		return []string{}
	}
	if skills == nil {
		return []string{}
	}
	return skills
}
