package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/tinytz/posix/tzposix"
)

// ZoneJSON is one exported zone.
type ZoneJSON struct {
	Name       string   `json:"Name,omitempty"`
	Descriptor string   `json:"Descriptor"`
	HasDst     bool     `json:"HasDst"`
	Std        string   `json:"Std"`
	Dst        string   `json:"Dst,omitempty"`
	Aliases    []string `json:"Aliases,omitempty"`
	Rules      string   `json:"Rules,omitempty"`
	Year       int      `json:"Year,omitempty"`
	Start      int64    `json:"Start,omitempty"`
	End        int64    `json:"End,omitempty"`
	Error      string   `json:"Error,omitempty"`
}

func newZoneJSON(name, descriptor string, z *tzposix.Zone, year int, err error) ZoneJSON {
	zj := ZoneJSON{Name: name, Descriptor: descriptor}
	if err != nil {
		zj.Error = err.Error()
		return zj
	}
	d := tzposix.Describe(z.Rules())
	zj.Std = d.Standard
	zj.HasDst = z.Rules().HasDST()
	if zj.HasDst {
		zj.Dst = d.Daylight
		zj.Rules = d.Rules
		zj.Year = year
		zj.Start, zj.End = z.Transitions(year)
	}
	return zj
}

func writeJSON(filename string, zones []ZoneJSON) error {
	if zones == nil {
		zones = []ZoneJSON{}
	}
	jsonData, err := json.MarshalIndent(zones, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal zones")
	}
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return errors.Wrapf(err, "write %s", filename)
	}
	return nil
}
