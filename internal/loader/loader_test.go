package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/meur/mhwdb/internal/loader"
	"github.com/meur/mhwdb/internal/translate"
)

var english = []string{"en"}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func monsterMap(t *testing.T) *translate.Map {
	t.Helper()
	m := translate.NewMap()
	require.NoError(t, m.AddEntry(1, "en", "Rathalos"))
	require.NoError(t, m.AddEntry(2, "en", "Rathian"))
	return m
}

func TestLoadTranslateMap_AssignsIDsInFileOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monster_names.json")
	writeFile(t, path, `[{"name_en": "Great Jagras"}, {"name_en": "Kulu-Ya-Ku"}, {"name_en": "Pukei-Pukei"}]`)

	m, err := loader.LoadTranslateMap(path, english)
	require.NoError(t, err)

	var ids []int
	var names []string
	for row := range m.All() {
		ids = append(ids, row.ID)
		names = append(names, row.Name("en"))
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.Equal(t, []string{"Great Jagras", "Kulu-Ya-Ku", "Pukei-Pukei"}, names)
}

func TestLoadTranslateMap_MissingLanguageName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item_names.json")
	writeFile(t, path, `[{"name_en": "Potion"}, {"name_ja": "回復薬"}]`)

	_, err := loader.LoadTranslateMap(path, english)
	assert.ErrorIs(t, err, loader.ErrMissingName)
}

func TestLoadTranslateMap_DuplicateName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "item_names.json")
	writeFile(t, path, `[{"name_en": "Potion"}, {"name_en": "Potion"}]`)

	_, err := loader.LoadTranslateMap(path, english)
	assert.ErrorIs(t, err, translate.ErrDuplicateName)
}

func TestLoadDataMap_KeysByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armor_data.json")
	writeFile(t, path, `[
		{"name_en": "Rathian", "rarity": 5, "part": "head", "male": true, "female": false, "slots": [1, 0, 0], "defense": 40,
		 "fire": 0, "water": 1, "thunder": -1, "ice": 2, "dragon": 0}
	]`)

	data, err := loader.LoadDataMap[loader.ArmorData](monsterMap(t), path)
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, 5, data[2].Rarity)
	assert.Equal(t, []int{1, 0, 0}, data[2].Slots)
	assert.True(t, data[2].Male)
}

func TestLoadDataMap_MissingNameField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armor_data.json")
	writeFile(t, path, `[{"rarity": 5}]`)

	_, err := loader.LoadDataMap[loader.ArmorData](monsterMap(t), path)
	require.ErrorIs(t, err, loader.ErrMissingName)
	assert.Contains(t, err.Error(), "armor_data.json")
}

func TestLoadDataMap_UnresolvableName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armor_data.json")
	writeFile(t, path, `[{"name_en": "Kirin", "rarity": 5}]`)

	_, err := loader.LoadDataMap[loader.ArmorData](monsterMap(t), path)
	require.ErrorIs(t, err, loader.ErrInvalidName)
	assert.ErrorIs(t, err, translate.ErrNameNotFound)
	assert.Contains(t, err.Error(), "Kirin")
	assert.Contains(t, err.Error(), "armor_data.json")
}

func TestLoadDataMap_MissingRequiredField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armor_data.json")
	writeFile(t, path, `[
		{"name_en": "Rathian", "rarity": 5, "part": "head", "male": true, "female": false, "slots": [1, 0, 0],
		 "fire": 0, "water": 1, "thunder": -1, "ice": 2, "dragon": 0}
	]`)

	_, err := loader.LoadDataMap[loader.ArmorData](monsterMap(t), path)
	require.ErrorIs(t, err, loader.ErrMissingField)
	assert.Contains(t, err.Error(), "defense")
	assert.Contains(t, err.Error(), "Rathian")
}

func TestLoadDataMap_ZeroValuedFieldIsPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decoration_data.json")
	writeFile(t, path, `[{"name_en": "Rathalos", "rarity": 0, "slot": 0, "skill_en": ""}]`)

	data, err := loader.LoadDataMap[loader.DecorationData](monsterMap(t), path)
	require.NoError(t, err)
	assert.Equal(t, 0, data[1].Slot)
}

func TestRequireFields(t *testing.T) {
	raw := []byte(`{"rarity": 6, "slot": 2}`)
	assert.NoError(t, loader.RequireFields(raw, "rarity", "slot"))

	err := loader.RequireFields(raw, "rarity", "skill_en", "slot")
	require.ErrorIs(t, err, loader.ErrMissingField)
	assert.Contains(t, err.Error(), "skill_en")
}

func TestLoadLanguageData_SkipsUnsupportedAndNonFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "monsters_EN.json"), `[
		{"name_en": "Rathalos", "description_en": "King of the skies"}
	]`)
	writeFile(t, filepath.Join(dir, "monsters_ja.json"), `not even json`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `ignored`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "extra_en.json"), 0755))

	data, err := loader.LoadLanguageData(monsterMap(t), dir, english, loader.DecodeMonsterDetail)
	require.NoError(t, err)

	require.Len(t, data, 1)
	require.Len(t, data[1], 1)
	assert.Equal(t, "King of the skies", data[1]["en"].Description)

	_, err = data.Lookup(2, "en")
	assert.ErrorIs(t, err, loader.ErrMissingDetail, "missing ids are tolerated at load time but fail on lookup")
}

func TestLoadLanguageData_SkipsDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "monsters_en.json"), `[
		{"name_en": "Rathalos", "description_en": "King of the skies"}
	]`)
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone_en.json"), filepath.Join(dir, "broken_en.json")))

	data, err := loader.LoadLanguageData(monsterMap(t), dir, english, loader.DecodeMonsterDetail)
	require.NoError(t, err)
	assert.Equal(t, "King of the skies", data[1]["en"].Description)
}

func TestLoadLanguageData_MultipleFilesMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a_en.json"), `[{"name_en": "Rathalos", "description_en": "one"}]`)
	writeFile(t, filepath.Join(dir, "b_en.json"), `[{"name_en": "Rathian", "description_en": "two"}]`)

	data, err := loader.LoadLanguageData(monsterMap(t), dir, english, loader.DecodeMonsterDetail)
	require.NoError(t, err)

	d, err := data.Lookup(2, "en")
	require.NoError(t, err)
	assert.Equal(t, "two", d.Description)
	assert.Equal(t, "Rathian", d.Name)
}

func TestLoadLanguageData_MissingNameField(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "monsters_en.json"), `[{"description_en": "nameless"}]`)

	_, err := loader.LoadLanguageData(monsterMap(t), dir, english, loader.DecodeMonsterDetail)
	require.ErrorIs(t, err, loader.ErrMissingName)
	assert.Contains(t, err.Error(), "monsters_en.json")
}

func TestLoadLanguageData_InvalidName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "monsters_en.json"), `[{"name_en": "Nergigante", "description_en": "x"}]`)

	_, err := loader.LoadLanguageData(monsterMap(t), dir, english, loader.DecodeMonsterDetail)
	require.ErrorIs(t, err, loader.ErrInvalidName)
	assert.Contains(t, err.Error(), "Nergigante")
}

func TestDecodeSkillDetail(t *testing.T) {
	raw := []byte(`{
		"name_en": "Attack Boost",
		"description_en": "Increases attack power.",
		"effects": [
			{"level": 1, "description_en": "Attack +3"},
			{"level": 2, "description_en": "Attack +6"}
		]
	}`)
	d, err := loader.DecodeSkillDetail(raw, "en")
	require.NoError(t, err)
	assert.Equal(t, "Attack Boost", d.Name)
	assert.Equal(t, []loader.SkillEffect{
		{Level: 1, Description: "Attack +3"},
		{Level: 2, Description: "Attack +6"},
	}, d.Effects)
}

func TestDecodeSkillDetail_MissingEffectDescription(t *testing.T) {
	raw := []byte(`{"name_en": "Attack Boost", "description_en": "", "effects": [{"level": 1}]}`)
	_, err := loader.DecodeSkillDetail(raw, "en")
	assert.ErrorIs(t, err, loader.ErrMissingField)
}

func TestDecodeMonsterDetail_MissingDescription(t *testing.T) {
	_, err := loader.DecodeMonsterDetail([]byte(`{"name_en": "Rathalos"}`), "en")
	assert.ErrorIs(t, err, loader.ErrMissingField)
}

func TestProperty_LanguageFileOnlyFillsItsLanguage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lang := rapid.SampledFrom([]string{"en", "ja", "fr"}).Draw(rt, "lang")

		dir, err := os.MkdirTemp("", "langdata")
		if err != nil {
			rt.Fatalf("mkdir: %v", err)
		}
		defer os.RemoveAll(dir)

		m := translate.NewMap()
		for _, l := range []string{"en", "ja", "fr"} {
			if err := m.AddEntry(1, l, "Rathalos-"+l); err != nil {
				rt.Fatalf("AddEntry: %v", err)
			}
		}
		body := `[{"name_` + lang + `": "Rathalos-` + lang + `", "description_` + lang + `": "d"}]`
		if err := os.WriteFile(filepath.Join(dir, "x_"+lang+".json"), []byte(body), 0644); err != nil {
			rt.Fatalf("write: %v", err)
		}

		data, err := loader.LoadLanguageData(m, dir, []string{"en", "ja", "fr"}, loader.DecodeMonsterDetail)
		if err != nil {
			rt.Fatalf("LoadLanguageData: %v", err)
		}
		if len(data[1]) != 1 {
			rt.Fatalf("expected one language bucket, got %d", len(data[1]))
		}
		if _, ok := data[1][lang]; !ok {
			rt.Fatalf("expected bucket %q", lang)
		}
	})
}
