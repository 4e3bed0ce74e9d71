package models

import (
	"fmt"
	"strings"
)

// PartyRole 区分借用人与经手人两个名单
type PartyRole string

const (
	RoleRequester PartyRole = "requester"
	RoleCustodian PartyRole = "custodian"
)

func (r PartyRole) Valid() bool { return r == RoleRequester || r == RoleCustodian }

func (r PartyRole) Document() Document {
	if r == RoleCustodian {
		return DocCustodians
	}
	return DocRequesters
}

// ParsePartyRole accepts singular and plural forms ("requesters").
func ParsePartyRole(s string) (PartyRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "requester", "requesters":
		return RoleRequester, nil
	case "custodian", "custodians":
		return RoleCustodian, nil
	}
	return "", fmt.Errorf("unknown party role %q", s)
}

type Party struct {
	ID   int       `json:"id"`
	Name string    `json:"name"`
	Role PartyRole `json:"role"`
}
