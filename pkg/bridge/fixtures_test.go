package bridge_test

import (
	"encoding/json"
	"errors"

	"github.com/mesh-intelligence/shelf/pkg/bridge"
)

type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

func (Gender) ShelfBridge() bridge.Bridge[Gender] {
	return bridge.StringEnum(GenderUnknown, GenderMale, GenderFemale)
}

// UnmarshalJSON maps tags it does not know to GenderUnknown.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := bridge.For[Gender]().Deserialize(s)
	if !ok {
		v = GenderUnknown
	}
	*g = v
	return nil
}

type User struct {
	Name   string `json:"name" yaml:"name"`
	Age    int    `json:"age" yaml:"age"`
	Gender Gender `json:"gender" yaml:"gender"`
}

func (User) ShelfBridge() bridge.Bridge[User] {
	return bridge.Codable[User]()
}

type unencodable struct{}

func (unencodable) MarshalJSON() ([]byte, error) {
	return nil, errors.New("cannot encode")
}
