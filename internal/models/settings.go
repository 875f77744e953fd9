package models

// SettingsID is the fixed identifier of the singleton AppSettings record.
const SettingsID int64 = 1

// AppSettings is the singleton application settings record.
// It is created once with defaults at store initialization and only ever
// updated with merge semantics afterwards.
type AppSettings struct {
	ID                   int64   `json:"id"`
	MonthlyBudget        float64 `json:"monthlyBudget"`
	EmergencyFundGoal    float64 `json:"emergencyFundGoal"`
	EmergencyFundCurrent float64 `json:"emergencyFundCurrent"`
	UserName             string  `json:"userName"`
	Theme                string  `json:"theme"`
}

// SettingsPatch is a partial settings update. Nil fields keep the stored
// value; a partial update never clobbers unspecified fields.
type SettingsPatch struct {
	MonthlyBudget        *float64
	EmergencyFundGoal    *float64
	EmergencyFundCurrent *float64
	UserName             *string
	Theme                *string
}
