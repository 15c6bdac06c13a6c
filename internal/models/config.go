package models

import (
	"trajetviz.dev/internal/appconf"
	"trajetviz.dev/internal/buildinfo"
)

type GitProperties struct {
	GitBranch             string `json:"git.branch"`
	GitBuildHost          string `json:"git.build.host"`
	GitBuildTime          string `json:"git.build.time"`
	GitBuildUserEmail     string `json:"git.build.user.email"`
	GitBuildUserName      string `json:"git.build.user.name"`
	GitBuildVersion       string `json:"git.build.version"`
	GitCommitId           string `json:"git.commit.id"`
	GitCommitIdAbbrev     string `json:"git.commit.id.abbrev"`
	GitCommitMessageShort string `json:"git.commit.message.short"`
	GitCommitTime         string `json:"git.commit.time"`
	GitDirty              string `json:"git.dirty"`
	GitRemoteOriginUrl    string `json:"git.remote.origin.url"`
}

func CurrentGitProperties() GitProperties {
	return GitProperties{
		GitBranch:             buildinfo.Branch,
		GitBuildHost:          buildinfo.Host,
		GitBuildTime:          buildinfo.BuildTime,
		GitBuildUserEmail:     buildinfo.UserEmail,
		GitBuildUserName:      buildinfo.UserName,
		GitBuildVersion:       buildinfo.Version,
		GitCommitId:           buildinfo.CommitHash,
		GitCommitIdAbbrev:     buildinfo.ShortHash(),
		GitCommitMessageShort: buildinfo.CommitMessage,
		GitCommitTime:         buildinfo.CommitTime,
		GitDirty:              buildinfo.Dirty,
		GitRemoteOriginUrl:    buildinfo.RemoteURL,
	}
}

// ConfigModel is the entry of /api/config.json: build details plus the map
// configuration a client needs to draw routes the same way the server does.
type ConfigModel struct {
	GitProperties GitProperties     `json:"gitProperties"`
	Id            string            `json:"id"`
	Name          string            `json:"name"`
	Map           appconf.VizConfig `json:"map"`
}

func NewConfigModel(viz appconf.VizConfig) ConfigModel {
	return ConfigModel{
		GitProperties: CurrentGitProperties(),
		Id:            "trajetviz",
		Name:          "Trajet Visualizer",
		Map:           viz,
	}
}
