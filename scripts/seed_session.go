// seed_session.go — standalone script to seed a demo decision session through
// the Homerank API from a JSON fixture.
//
// Usage:
//
//	go run scripts/seed_session.go -file fixtures/demo_session.json -api http://localhost:8700 -client demo
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type fixture struct {
	Session struct {
		Name         string   `json:"name"`
		RefLat       *float64 `json:"ref_lat,omitempty"`
		RefLng       *float64 `json:"ref_lng,omitempty"`
		RefLabel     string   `json:"ref_label,omitempty"`
		WeightMethod string   `json:"weight_method,omitempty"`
	} `json:"session"`
	Properties []struct {
		Title     string                 `json:"title"`
		URL       string                 `json:"url,omitempty"`
		PriceText string                 `json:"price_text,omitempty"`
		Lat       *float64               `json:"lat,omitempty"`
		Lng       *float64               `json:"lng,omitempty"`
		Attrs     map[string]interface{} `json:"attrs,omitempty"`
	} `json:"properties"`
	Comparisons []struct {
		CriterionA string `json:"criterion_a"`
		CriterionB string `json:"criterion_b"`
		Value      int    `json:"value"`
	} `json:"comparisons"`
}

func main() {
	filePath := flag.String("file", "fixtures/demo_session.json", "path to JSON fixture")
	apiURL := flag.String("api", "http://localhost:8700", "Homerank API base URL")
	clientID := flag.String("client", "seed-script", "X-Client-ID header value")
	rank := flag.Bool("rank", true, "trigger a ranking run after seeding")
	dryRun := flag.Bool("dry-run", false, "print payloads without posting")
	flag.Parse()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}
	if fx.Session.Name == "" {
		log.Fatal("fixture has no session name")
	}

	if *dryRun {
		out, _ := json.MarshalIndent(fx, "", "  ")
		fmt.Println(string(out))
		fmt.Printf("dry run: %d properties, %d comparisons\n", len(fx.Properties), len(fx.Comparisons))
		return
	}

	var session struct {
		ID string `json:"session_id"`
	}
	if err := post(*apiURL+"/api/v1/sessions", *clientID, "POST", fx.Session, &session); err != nil {
		log.Fatalf("create session: %v", err)
	}
	log.Printf("created session %s", session.ID)

	for _, p := range fx.Properties {
		if err := post(*apiURL+"/api/v1/sessions/"+session.ID+"/properties", *clientID, "POST", p, nil); err != nil {
			log.Fatalf("create property %q: %v", p.Title, err)
		}
		log.Printf("added property %q", p.Title)
	}

	for _, c := range fx.Comparisons {
		if err := post(*apiURL+"/api/v1/sessions/"+session.ID+"/comparisons", *clientID, "PUT", c, nil); err != nil {
			log.Fatalf("submit comparison %s/%s: %v", c.CriterionA, c.CriterionB, err)
		}
		log.Printf("compared %s vs %s (%+d)", c.CriterionA, c.CriterionB, c.Value)
	}

	if *rank {
		var result struct {
			PropertyCount    int     `json:"property_count"`
			ConsistencyRatio float64 `json:"consistency_ratio"`
			IsConsistent     bool    `json:"is_consistent"`
		}
		if err := post(*apiURL+"/api/v1/sessions/"+session.ID+"/rank", *clientID, "POST", map[string]string{}, &result); err != nil {
			log.Fatalf("rank session: %v", err)
		}
		log.Printf("ranked %d properties (CR=%.3f consistent=%v)", result.PropertyCount, result.ConsistencyRatio, result.IsConsistent)
	}
}

func post(url, clientID, method string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", clientID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s %s: %d %s", method, url, resp.StatusCode, apiErr.Error)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
