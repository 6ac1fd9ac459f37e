package types

type ConvertScriptReq struct {
	Script string `json:"script"`
}

type GenerateScriptReq struct {
	Text string `json:"text"`
}

type GenerateScriptResp struct {
	Script string `json:"script"`
}

type PodcastConfigStatusResp struct {
	Configured   bool     `json:"configured"`
	HasAppID     bool     `json:"has_app_id"`
	HasAccessKey bool     `json:"has_access_key"`
	Speakers     []string `json:"speakers"`
}

type ConfigUpsertReq struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"`
}
