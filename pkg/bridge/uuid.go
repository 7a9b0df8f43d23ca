package bridge

import "github.com/google/uuid"

type uuidBridge struct{}

// UUID returns the bridge for uuid.UUID, stored in its canonical string
// form. Reading also accepts a 16-byte blob.
func UUID() Bridge[uuid.UUID] { return uuidBridge{} }

func (uuidBridge) Serialize(id uuid.UUID) (any, bool) { return id.String(), true }

func (uuidBridge) Deserialize(native any) (uuid.UUID, bool) {
	switch v := native.(type) {
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	case []byte:
		id, err := uuid.FromBytes(v)
		return id, err == nil
	default:
		return uuid.Nil, false
	}
}
