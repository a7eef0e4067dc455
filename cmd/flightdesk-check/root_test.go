package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/flightdesk/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

var fixture = map[string]string{
	"pilot_roster.csv": "pilot_id,name,skills,certifications,location,status,current_assignment\n" +
		"P001,Arjun,\"Mapping, Survey\",DGCA,Bangalore,Assigned,PRJ001\n" +
		"P002,Neha,Thermal,\"DGCA, Night Ops\",Mumbai,Available,–\n",
	"drone_fleet.csv": "drone_id,model,capabilities,status,location,current_assignment,maintenance_due\n" +
		"D001,DJI M300,Thermal,Available,Bangalore,PRJ001,2024-03-01\n",
	"missions.csv": "project_id,client,location,required_skills,required_certs,start_date,end_date,priority\n" +
		"PRJ001,Client A,Bangalore,Mapping,DGCA,2024-02-01,2024-02-05,Normal\n" +
		"PRJ002,Client B,Mumbai,Thermal,\"DGCA, Night Ops\",2024-02-03,2024-02-06,Urgent\n",
}

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixture {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConflictsCommand(t *testing.T) {
	Convey("Given CSV exports", t, func() {
		dir := writeFixture(t)

		Convey("No conflicts are reported without lookahead", func() {
			out, _, err := run("conflicts", "--dir", dir)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "no conflicts")
		})

		Convey("Lookahead brings upcoming maintenance into scope", func() {
			out, _, err := run("conflicts", "--dir", dir, "--lookahead", "30")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "MaintenanceRequired PRJ001 D001")
		})

		Convey("JSON output decodes into a report", func() {
			out, _, err := run("conflicts", "--dir", dir, "--lookahead", "30", "--format", "json")
			So(err, ShouldBeNil)
			var rep types.ConflictReport
			So(json.Unmarshal([]byte(out), &rep), ShouldBeNil)
			So(rep.Findings, ShouldHaveLength, 1)
			So(rep.Findings[0].ResourceIDs, ShouldResemble, []string{"D001"})
		})

		Convey("Unknown kinds fail", func() {
			_, _, err := run("conflicts", "--dir", dir, "--kind", "Bogus")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRankCommand(t *testing.T) {
	Convey("Given CSV exports", t, func() {
		dir := writeFixture(t)

		Convey("Candidates are ranked best first", func() {
			out, _, err := run("rank", "--dir", dir, "--mission", "PRJ002")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "mission PRJ002")
			So(out, ShouldContainSubstring, "1. P002 Neha score=1.000 (perfect match)")
			So(out, ShouldContainSubstring, "2. P001 Arjun")
		})

		Convey("JSON output honors the limit", func() {
			out, _, err := run("rank", "--dir", dir, "--mission", "PRJ002", "--limit", "1", "--format", "json")
			So(err, ShouldBeNil)
			var list types.CandidateList
			So(json.Unmarshal([]byte(out), &list), ShouldBeNil)
			So(list.Suggestions, ShouldHaveLength, 1)
			So(list.Suggestions[0].PilotID, ShouldEqual, "P002")
		})

		Convey("A single pilot can be assessed", func() {
			out, _, err := run("rank", "--dir", dir, "--mission", "PRJ002", "--pilot", "P001")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "P001 Arjun")
			So(out, ShouldContainSubstring, "missing skill: Thermal")
		})

		Convey("The mission flag is required", func() {
			_, _, err := run("rank", "--dir", dir)
			So(err, ShouldNotBeNil)
		})

		Convey("Unknown missions fail", func() {
			_, _, err := run("rank", "--dir", dir, "--mission", "PRJ404")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestUrgentAndSummaryCommands(t *testing.T) {
	Convey("Given CSV exports", t, func() {
		dir := writeFixture(t)

		Convey("Urgent lists only urgent missions", func() {
			out, _, err := run("urgent", "--dir", dir)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "mission PRJ002 Mumbai 2024-02-03..2024-02-06")
			So(out, ShouldNotContainSubstring, "PRJ001")
		})

		Convey("Summary counts against the given day", func() {
			out, _, err := run("summary", "--dir", dir, "--date", "2024-02-02")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "as of 2024-02-02")
			So(out, ShouldContainSubstring, "pilots:   2 total")
			So(out, ShouldContainSubstring, "missions: 2 total, 1 active, 1 upcoming, 1 urgent")
		})

		Convey("Malformed dates fail", func() {
			_, _, err := run("summary", "--dir", dir, "--date", "02/02/2024")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDronesCommand(t *testing.T) {
	Convey("Given CSV exports", t, func() {
		dir := writeFixture(t)

		Convey("A drone is available for its own mission", func() {
			out, _, err := run("drones", "--dir", dir, "--capability", "thermal", "--mission", "PRJ001")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "D001 Bangalore Available [Thermal] available")
		})

		Convey("An overlapping mission reports the double booking", func() {
			out, _, err := run("drones", "--dir", dir, "--mission", "PRJ002")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "unavailable: double-booked with PRJ001")
		})

		Convey("Filters that match nothing say so", func() {
			out, _, err := run("drones", "--dir", dir, "--capability", "Mapping")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "no matching drones")
		})

		Convey("JSON output carries the checked day", func() {
			out, _, err := run("drones", "--dir", dir, "--date", "2024-03-10", "--available", "--format", "json")
			So(err, ShouldBeNil)
			var list struct {
				Window struct {
					Start string `json:"start"`
				} `json:"window"`
				Drones []json.RawMessage `json:"drones"`
			}
			So(json.Unmarshal([]byte(out), &list), ShouldBeNil)
			So(list.Window.Start, ShouldEqual, "2024-03-10")
			So(list.Drones, ShouldHaveLength, 1)
		})

		Convey("Malformed dates fail", func() {
			_, _, err := run("drones", "--dir", dir, "--date", "soon")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRootFlags(t *testing.T) {
	Convey("Given the root command", t, func() {
		Convey("Unknown formats are rejected", func() {
			_, _, err := run("conflicts", "--dir", writeFixture(t), "--format", "xml")
			So(err, ShouldNotBeNil)
		})

		Convey("Negative lookahead is rejected", func() {
			_, _, err := run("conflicts", "--dir", writeFixture(t), "--lookahead=-1")
			So(err, ShouldNotBeNil)
		})

		Convey("An empty directory is reported", func() {
			_, _, err := run("conflicts", "--dir", t.TempDir())
			So(err, ShouldNotBeNil)
		})

		Convey("Parse warnings go to stderr", func() {
			dir := writeFixture(t)
			bad := fixture["missions.csv"] + "PRJ003,Client C,Pune,Mapping,DGCA,soon,2024-02-06,Normal\n"
			So(os.WriteFile(filepath.Join(dir, "missions.csv"), []byte(bad), 0o600), ShouldBeNil)
			_, stderr, err := run("summary", "--dir", dir, "--date", "2024-02-02")
			So(err, ShouldBeNil)
			So(stderr, ShouldContainSubstring, "warning: mission row 3")
		})
	})
}
