package loader

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// MonsterDetail is one entry of a monsters/monster_descriptions/*_<lang>.json file.
type MonsterDetail struct {
	Name        string
	Description string
}

// DecodeMonsterDetail reads name_<lang> and description_<lang>.
func DecodeMonsterDetail(raw []byte, language string) (MonsterDetail, error) {
	description, err := RequireString(raw, "description_"+language)
	if err != nil {
		return MonsterDetail{}, err
	}
	return MonsterDetail{
		Name:        gjson.GetBytes(raw, NameField(language)).String(),
		Description: description,
	}, nil
}

// SkillEffect is the localized description of one skill level.
type SkillEffect struct {
	Level       int
	Description string
}

// SkillDetail is one entry of a skills/skills/*_<lang>.json file.
type SkillDetail struct {
	Name        string
	Description string
	Effects     []SkillEffect
}

// DecodeSkillDetail reads the tree description and every effects[] level.
func DecodeSkillDetail(raw []byte, language string) (SkillDetail, error) {
	description, err := RequireString(raw, "description_"+language)
	if err != nil {
		return SkillDetail{}, err
	}
	effects := gjson.GetBytes(raw, "effects")
	if !effects.IsArray() {
		return SkillDetail{}, fmt.Errorf("%w: effects", ErrMissingField)
	}

	detail := SkillDetail{
		Name:        gjson.GetBytes(raw, NameField(language)).String(),
		Description: description,
	}
	var effectErr error
	effects.ForEach(func(_, e gjson.Result) bool {
		level := e.Get("level")
		text := e.Get("description_" + language)
		if !level.Exists() {
			effectErr = fmt.Errorf("%w: effects[].level", ErrMissingField)
			return false
		}
		if !text.Exists() {
			effectErr = fmt.Errorf("%w: effects[].description_%s", ErrMissingField, language)
			return false
		}
		detail.Effects = append(detail.Effects, SkillEffect{
			Level:       int(level.Int()),
			Description: text.String(),
		})
		return true
	})
	if effectErr != nil {
		return SkillDetail{}, effectErr
	}
	return detail, nil
}

// ArmorData is one entry of armors/armor_data.json.
type ArmorData struct {
	NameEn  string `json:"name_en"`
	Rarity  int    `json:"rarity"`
	Part    string `json:"part"`
	Male    bool   `json:"male"`
	Female  bool   `json:"female"`
	Slots   []int  `json:"slots"`
	Defense int    `json:"defense"`
	Fire    int    `json:"fire"`
	Water   int    `json:"water"`
	Thunder int    `json:"thunder"`
	Ice     int    `json:"ice"`
	Dragon  int    `json:"dragon"`
}

// RequiredFields lists the keys every armor record must carry.
func (ArmorData) RequiredFields() []string {
	return []string{"rarity", "part", "male", "female", "slots",
		"defense", "fire", "water", "thunder", "ice", "dragon"}
}

// DecorationData is one entry of decorations/decoration_data.json.
type DecorationData struct {
	NameEn  string `json:"name_en"`
	Rarity  int    `json:"rarity"`
	Slot    int    `json:"slot"`
	SkillEn string `json:"skill_en"`
}

func (DecorationData) RequiredFields() []string {
	return []string{"rarity", "slot", "skill_en"}
}
