package models

// KboTeam is one entry of the static KBO league catalog.
type KboTeam struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name,omitempty"`
	HomeStadium string `json:"home_stadium,omitempty"`
}

// KBOTeams is the fixed league catalog. Request creation must reference one
// of these ids; there is no remote lookup.
var KBOTeams = []KboTeam{
	{ID: "doosan", Name: "두산 베어스", ShortName: "두산", HomeStadium: "잠실야구장"},
	{ID: "lg", Name: "LG 트윈스", ShortName: "LG", HomeStadium: "잠실야구장"},
	{ID: "kt", Name: "KT 위즈", ShortName: "KT", HomeStadium: "수원KT위즈파크"},
	{ID: "ssg", Name: "SSG 랜더스", ShortName: "SSG", HomeStadium: "인천SSG랜더스필드"},
	{ID: "nc", Name: "NC 다이노스", ShortName: "NC", HomeStadium: "창원NC파크"},
	{ID: "kia", Name: "KIA 타이거즈", ShortName: "KIA", HomeStadium: "광주기아챔피언스필드"},
	{ID: "lotte", Name: "롯데 자이언츠", ShortName: "롯데", HomeStadium: "사직야구장"},
	{ID: "samsung", Name: "삼성 라이온즈", ShortName: "삼성", HomeStadium: "대구삼성라이온즈파크"},
	{ID: "hanwha", Name: "한화 이글스", ShortName: "한화", HomeStadium: "대전한화생명볼파크"},
	{ID: "kiwoom", Name: "키움 히어로즈", ShortName: "키움", HomeStadium: "고척스카이돔"},
}

// FindTeam resolves a team id against the catalog.
func FindTeam(id string) (KboTeam, bool) {
	for _, t := range KBOTeams {
		if t.ID == id {
			return t, true
		}
	}
	return KboTeam{}, false
}
