package utils

import (
	"fmt"
	"lms/config"
	"log"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// SendOTPToMobile delivers an OTP through the SMS gateway. No-op when no API
// key is configured.
func SendOTPToMobile(mobile, otp string) error {
	if config.AppConfig.SmsApiKey == "" {
		log.Printf("SMS disabled, skipping OTP send to %s", mobile)
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.SmsApiKey,
			"route":            "dlt",
			"sender_id":        config.AppConfig.SmsSender,
			"variables_values": fmt.Sprintf("%s|10", otp), // OTP and validity minutes
			"numbers":          mobile,
		}).
		Get(config.AppConfig.SmsApiUrl)

	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
