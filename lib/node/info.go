package node

import (
	"encoding/json"
	"time"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/version"
)

type NodeInfo struct {
	Node     NodeInfoNode     `json:"node"`
	Policy   NodePolicy       `json:"policy"`
	Contract NodeContractInfo `json:"contract"`
}

type NodeInfoNode struct {
	Version  NodeVersion      `json:"version"`
	Started  string           `json:"started"`
	Endpoint *common.Endpoint `json:"endpoint"`
}

type NodePolicy struct {
	NetworkID        string        `json:"network-id"`
	ProposalLifetime time.Duration `json:"proposal-lifetime"`
	RateLimitRuleAPI string        `json:"rate-limit-api"`
	RecordCacheSize  int           `json:"record-cache-size"`
}

type NodeContractInfo struct {
	Contract      string `json:"contract"`
	Version       string `json:"version"`
	WhitelistSize int    `json:"whitelist-size"`
}

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}

func NewNodeVersion() NodeVersion {
	return NodeVersion{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		GitState:  version.GitState,
		BuildDate: version.BuildDate,
	}
}

func NewNodePolicy(config common.Config) NodePolicy {
	return NodePolicy{
		NetworkID:        string(config.NetworkID),
		ProposalLifetime: config.ProposalLifetime,
		RateLimitRuleAPI: config.RateLimitRuleAPI.Default.Formatted,
		RecordCacheSize:  config.RecordCacheSize,
	}
}

func NewNodeInfoFromJSON(b []byte) (nodeInfo NodeInfo, err error) {
	err = json.Unmarshal(b, &nodeInfo)
	return
}
