package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxChips int = 2000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

var accessToken string
var benchUserID int

func main() {
	chipIDs := make([]string, maxChips)
	for i := 0; i < maxChips; i++ {
		chipIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v chip IDs\n", maxChips)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	registerBenchUser()
	fmt.Printf("benchmark user registered, id=%v\n", benchUserID)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxChips; i++ {
		i := i
		wg.Add(1)
		go func() {
			registerOwnership(chipIDs[i], i)
			fmt.Printf("\rregistered ownership for chip %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered ownership for %v chips: used time=%v seconds, throughput=%v action/second\n",
		maxChips, usedTime.Seconds(), float64(maxChips)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxChips; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(chipIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v chips: used time=%v seconds, throughput=%v action/second\n",
		maxChips, usedTime.Seconds(), float64(maxChips*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func postJSON(url string, payload any, withAuth bool) *http.Response {
	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	return resp
}

func registerBenchUser() {
	resp := postJSON(fmt.Sprintf("http://%s/users/register", httpHostPort), map[string]string{
		"username": "bench-" + uuid.NewString(),
		"password": "bench-password",
		"email":    "bench@example.com",
	}, false)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("failed to register benchmark user: %v %s", resp.StatusCode, body)
	}

	var profile struct {
		ID          int    `json:"id"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		log.Fatal("failed to decode register response:", err)
	}
	benchUserID = profile.ID
	accessToken = profile.AccessToken
}

func registerOwnership(chipID string, index int) {
	resp := postJSON(fmt.Sprintf("http://%s/sensordata/ownership", httpHostPort), map[string]any{
		"userId":    benchUserID,
		"chipId":    chipID,
		"roomName":  fmt.Sprintf("room-%v", index),
		"imageName": "room.png",
	}, true)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		panic(fmt.Sprintf("ownership registration failed: %v %s", resp.StatusCode, body))
	}
}

func doAction(chipID string) {
	actions := []func(){
		genPostReadingAction(chipID),
		genGetLatestReadingAction(chipID),
		genSyncOwnershipAction(chipID),
	}
	actionNames := []string{
		"PostReading",
		"GetLatestReading",
		"SyncOwnership",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for chip %v", actionNames[index], chipID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genPostReadingAction(chipID string) func() {
	return func() {
		payload := map[string]any{
			"chipId":         chipID,
			"temperatureDht": rndFloat64(10.0, 35.0, 2),
			"humidityDht":    rndFloat64(20.0, 90.0, 2),
			"gasDetected":    flipCoin(),
		}
		if flipCoin() {
			payload["pressure"] = rndFloat64(980.0, 1040.0, 2)
		}

		resp := postJSON(fmt.Sprintf("http://%s/sensordata", httpHostPort), payload, false)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
			fmt.Printf("\nresponse status code unexpected: %v\n", resp.StatusCode)
		}
	}
}

func genGetLatestReadingAction(chipID string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/sensordata/chip/%s/latest", httpHostPort, chipID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		// 404 is fine before the first reading of this chip lands
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
			fmt.Printf("\nresponse status code unexpected: %v\n", resp.StatusCode)
		}
	}
}

func genSyncOwnershipAction(chipID string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/sensordata/ownership/%s/latest", httpHostPort, chipID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
			return
		}

		// replay with the validator, expect the cheap path
		etag := resp.Header.Get("ETag")
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/sensordata/ownership/%s/latest", httpHostPort, chipID), nil)
		req.Header.Set("If-None-Match", etag)
		resp2, err := http.DefaultClient.Do(req)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp2.Body.Close()
		if resp2.StatusCode != http.StatusNotModified {
			fmt.Printf("\nexpected 304 on conditional sync, got: %v\n", resp2.StatusCode)
		}
	}
}
