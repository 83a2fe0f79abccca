package services

import (
	"net/url"
	"spd/internal/structures"
)

// PanelAPIService builds panel image URLs for the third-party chart
// renderer. It only constructs the URL; no request is ever made here.
type PanelAPIService struct {
	apiServer string
}

func NewPanelAPIService(conf *structures.Config) *PanelAPIService {
	return &PanelAPIService{apiServer: conf.Panel.ApiServer}
}

// ImageURL returns the render URL for a stand. Empty parameters are
// omitted; with none set the bare server address comes back.
func (p *PanelAPIService) ImageURL(name, ability string) string {
	params := url.Values{}
	if name != "" {
		params.Set("name", name)
	}
	if ability != "" {
		params.Set("ability", ability)
	}
	if len(params) == 0 {
		return p.apiServer
	}
	return p.apiServer + "?" + params.Encode()
}
