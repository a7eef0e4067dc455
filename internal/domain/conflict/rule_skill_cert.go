package conflict

import (
	"context"
	"fmt"
	"strings"
)

// NewSkillCertRule flags assigned pilots lacking a required skill or certification.
func NewSkillCertRule() Rule { return skillCertRule{} }

type skillCertRule struct{}

func (skillCertRule) Kind() Kind { return KindSkillCertMismatch }

func (skillCertRule) Evaluate(_ context.Context, in Input) ([]Finding, []Skip) {
	var (
		findings []Finding
		skips    []Skip
	)
	for _, m := range in.Snapshot.Missions() {
		if id := m.AssignedPilot; id != "" {
			if _, ok := in.Snapshot.Pilot(id); !ok {
				skips = append(skips, Skip{Kind: KindSkillCertMismatch, ResourceID: id, MissionID: m.ID,
					Reason: "assigned pilot not in snapshot"})
			}
		}
		for _, p := range in.Snapshot.AssignedPilots(m) {
			skills := m.RequiredSkills.Missing(p.Skills)
			certs := m.RequiredCerts.Missing(p.Certifications)
			if len(skills) == 0 && len(certs) == 0 {
				continue
			}
			var parts []string
			if len(skills) > 0 {
				parts = append(parts, "skills "+strings.Join(skills, ", "))
			}
			if len(certs) > 0 {
				parts = append(parts, "certifications "+strings.Join(certs, ", "))
			}
			findings = append(findings, Finding{
				Kind:          KindSkillCertMismatch,
				Severity:      SeverityHigh,
				ResourceIDs:   []string{p.ID},
				MissionID:     m.ID,
				MissingSkills: skills,
				MissingCerts:  certs,
				Detail:        fmt.Sprintf("pilot %s lacks required %s for %s", p.ID, strings.Join(parts, " and "), m.ID),
			})
		}
	}
	return findings, skips
}
