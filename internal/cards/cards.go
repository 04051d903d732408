package cards

// CardType distinguishes the two table decks.
type CardType string

const (
	TypeMethod   CardType = "method"
	TypeEvidence CardType = "evidence"
)

// Card is one method or evidence card from the fixed catalog.
type Card struct {
	ID   string   `json:"id"`
	Type CardType `json:"type"`
	Name string   `json:"name"`
}

// ClueCategory groups the forensic clue cards.
type ClueCategory string

const (
	CategoryLocation     ClueCategory = "location"
	CategoryTime         ClueCategory = "time"
	CategoryWeather      ClueCategory = "weather"
	CategoryCondition    ClueCategory = "condition"
	CategoryRelationship ClueCategory = "relationship"
	CategoryOther        ClueCategory = "other"
)

// ClueCard is one card the forensic can place as a clue.
type ClueCard struct {
	ID       string       `json:"id"`
	Category ClueCategory `json:"category"`
	Name     string       `json:"name"`
}

var MethodCards = []Card{
	{ID: "method_1", Type: TypeMethod, Name: "Arma de Fogo"},
	{ID: "method_2", Type: TypeMethod, Name: "Facada"},
	{ID: "method_3", Type: TypeMethod, Name: "Envenenamento"},
	{ID: "method_4", Type: TypeMethod, Name: "Estrangulamento"},
	{ID: "method_5", Type: TypeMethod, Name: "Afogamento"},
	{ID: "method_6", Type: TypeMethod, Name: "Golpe Contundente"},
	{ID: "method_7", Type: TypeMethod, Name: "Empurrão de Altura"},
	{ID: "method_8", Type: TypeMethod, Name: "Acidente de Carro"},
	{ID: "method_9", Type: TypeMethod, Name: "Overdose"},
	{ID: "method_10", Type: TypeMethod, Name: "Sufocamento"},
	{ID: "method_11", Type: TypeMethod, Name: "Incêndio"},
	{ID: "method_12", Type: TypeMethod, Name: "Explosão"},
}

var EvidenceCards = []Card{
	{ID: "evidence_1", Type: TypeEvidence, Name: "Arma"},
	{ID: "evidence_2", Type: TypeEvidence, Name: "Documento"},
	{ID: "evidence_3", Type: TypeEvidence, Name: "Fibra"},
	{ID: "evidence_4", Type: TypeEvidence, Name: "Impressão Digital"},
	{ID: "evidence_5", Type: TypeEvidence, Name: "Sangue"},
	{ID: "evidence_6", Type: TypeEvidence, Name: "Cabelo"},
	{ID: "evidence_7", Type: TypeEvidence, Name: "Pegada"},
	{ID: "evidence_8", Type: TypeEvidence, Name: "Substância Química"},
	{ID: "evidence_9", Type: TypeEvidence, Name: "Ferramenta"},
	{ID: "evidence_10", Type: TypeEvidence, Name: "Roupas"},
	{ID: "evidence_11", Type: TypeEvidence, Name: "Objeto Pessoal"},
	{ID: "evidence_12", Type: TypeEvidence, Name: "Marcas no Corpo"},
}

var ClueCards = []ClueCard{
	{ID: "clue_loc_1", Category: CategoryLocation, Name: "Apartamento"},
	{ID: "clue_loc_2", Category: CategoryLocation, Name: "Rua"},
	{ID: "clue_loc_3", Category: CategoryLocation, Name: "Parque"},
	{ID: "clue_loc_4", Category: CategoryLocation, Name: "Restaurante"},
	{ID: "clue_loc_5", Category: CategoryLocation, Name: "Escritório"},
	{ID: "clue_loc_6", Category: CategoryLocation, Name: "Hospital"},

	{ID: "clue_time_1", Category: CategoryTime, Name: "Manhã"},
	{ID: "clue_time_2", Category: CategoryTime, Name: "Tarde"},
	{ID: "clue_time_3", Category: CategoryTime, Name: "Noite"},
	{ID: "clue_time_4", Category: CategoryTime, Name: "Madrugada"},
	{ID: "clue_time_5", Category: CategoryTime, Name: "Dia Útil"},
	{ID: "clue_time_6", Category: CategoryTime, Name: "Fim de Semana"},

	{ID: "clue_weather_1", Category: CategoryWeather, Name: "Sol"},
	{ID: "clue_weather_2", Category: CategoryWeather, Name: "Chuva"},
	{ID: "clue_weather_3", Category: CategoryWeather, Name: "Neblina"},
	{ID: "clue_weather_4", Category: CategoryWeather, Name: "Neve"},
	{ID: "clue_weather_5", Category: CategoryWeather, Name: "Tempestade"},
	{ID: "clue_weather_6", Category: CategoryWeather, Name: "Calor Extremo"},

	{ID: "clue_cond_1", Category: CategoryCondition, Name: "Muito Sangue"},
	{ID: "clue_cond_2", Category: CategoryCondition, Name: "Pouco Sangue"},
	{ID: "clue_cond_3", Category: CategoryCondition, Name: "Corpo Oculto"},
	{ID: "clue_cond_4", Category: CategoryCondition, Name: "Corpo Visível"},
	{ID: "clue_cond_5", Category: CategoryCondition, Name: "Luta"},
	{ID: "clue_cond_6", Category: CategoryCondition, Name: "Sem Luta"},

	{ID: "clue_rel_1", Category: CategoryRelationship, Name: "Família"},
	{ID: "clue_rel_2", Category: CategoryRelationship, Name: "Amigo"},
	{ID: "clue_rel_3", Category: CategoryRelationship, Name: "Colega"},
	{ID: "clue_rel_4", Category: CategoryRelationship, Name: "Estranho"},
	{ID: "clue_rel_5", Category: CategoryRelationship, Name: "Inimigo"},
	{ID: "clue_rel_6", Category: CategoryRelationship, Name: "Rival"},

	{ID: "clue_other_1", Category: CategoryOther, Name: "Testemunha"},
	{ID: "clue_other_2", Category: CategoryOther, Name: "Sem Testemunha"},
	{ID: "clue_other_3", Category: CategoryOther, Name: "Premeditado"},
	{ID: "clue_other_4", Category: CategoryOther, Name: "Acidental"},
	{ID: "clue_other_5", Category: CategoryOther, Name: "Câmeras"},
	{ID: "clue_other_6", Category: CategoryOther, Name: "Sem Câmeras"},
}

// MethodByID looks a method card up in the catalog.
func MethodByID(id string) (Card, bool) {
	for _, c := range MethodCards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// EvidenceByID looks an evidence card up in the catalog.
func EvidenceByID(id string) (Card, bool) {
	for _, c := range EvidenceCards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// ClueExists reports whether a clue card with the given category and
// display name is part of the catalog.
func ClueExists(category ClueCategory, name string) bool {
	for _, c := range ClueCards {
		if c.Category == category && c.Name == name {
			return true
		}
	}
	return false
}

// ValidCategory reports whether the category is one of the six known ones.
func ValidCategory(category ClueCategory) bool {
	switch category {
	case CategoryLocation, CategoryTime, CategoryWeather,
		CategoryCondition, CategoryRelationship, CategoryOther:
		return true
	}
	return false
}
