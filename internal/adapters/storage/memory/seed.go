package memory

import (
	"context"
	"fmt"
	"time"

	"blood-donor-network/internal/domain/blood"
	"blood-donor-network/internal/domain/bloodrequests"
	"blood-donor-network/internal/domain/donors"
	"blood-donor-network/internal/domain/responses"
)

// Seed carga el set fijo de demo: 8 donantes (uno por grupo),
// 2 solicitudes difundidas y 3 respuestas. Va directo a los repos,
// sin pasar por las validaciones de los services.
func Seed(ctx context.Context, d donors.Repository, br bloodrequests.Repository, rr responses.Repository) error {
	base := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

	for i, donor := range seedDonors() {
		donor.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := d.Create(ctx, donor); err != nil {
			return fmt.Errorf("seed donor %s: %w", donor.ID, err)
		}
	}
	for _, req := range seedBloodRequests() {
		if err := br.Create(ctx, req); err != nil {
			return fmt.Errorf("seed blood request %s: %w", req.ID, err)
		}
	}
	for _, resp := range seedResponses() {
		if err := rr.Create(ctx, resp); err != nil {
			return fmt.Errorf("seed response %s: %w", resp.ID, err)
		}
	}
	return nil
}

func seedDonors() []donors.Donor {
	return []donors.Donor{
		seedDonor("donor-1", "Raj Sharma", "raj.sharma@email.com", "+91 98765 43210", blood.OPos, "1990-05-15", "male", 75,
			"123 Main Street, Mumbai, Maharashtra", "19.0760", "72.8777", true, 23, "4.9"),
		seedDonor("donor-2", "Priya Patel", "priya.patel@email.com", "+91 87654 32109", blood.APos, "1988-08-22", "female", 62,
			"456 Park Avenue, Delhi", "28.6139", "77.2090", true, 15, "4.7"),
		seedDonor("donor-3", "Amit Kumar", "amit.kumar@email.com", "+91 76543 21098", blood.BNeg, "1985-12-10", "male", 80,
			"789 Lake Road, Bangalore, Karnataka", "12.9716", "77.5946", false, 31, "4.8"),
		seedDonor("donor-4", "Sneha Reddy", "sneha.reddy@email.com", "+91 98456 78901", blood.ABPos, "1992-03-18", "female", 58,
			"321 Garden Street, Hyderabad, Telangana", "17.3850", "78.4867", true, 12, "4.6"),
		seedDonor("donor-5", "Rohit Singh", "rohit.singh@email.com", "+91 87965 23401", blood.ONeg, "1987-09-25", "male", 72,
			"654 River View, Pune, Maharashtra", "18.5204", "73.8567", true, 45, "5.0"),
		seedDonor("donor-6", "Kavya Nair", "kavya.nair@email.com", "+91 76823 45678", blood.ANeg, "1995-07-12", "female", 55,
			"987 Coastal Road, Kochi, Kerala", "9.9312", "76.2673", true, 8, "4.5"),
		seedDonor("donor-7", "Arjun Gupta", "arjun.gupta@email.com", "+91 98234 56789", blood.BPos, "1991-11-08", "male", 78,
			"159 Hill Station Road, Shimla, Himachal Pradesh", "31.1048", "77.1734", true, 19, "4.7"),
		seedDonor("donor-8", "Meera Joshi", "meera.joshi@email.com", "+91 87654 90123", blood.ABNeg, "1989-01-30", "female", 60,
			"753 Temple Street, Jaipur, Rajasthan", "26.9124", "75.7873", true, 27, "4.8"),
	}
}

func seedDonor(id, name, email, phone string, bt blood.Type, dob, gender string, weight int,
	address, lat, lng string, available bool, donations int, rating string) donors.Donor {
	return donors.Donor{
		ID:             id,
		FullName:       name,
		Email:          email,
		Phone:          phone,
		BloodType:      bt,
		DateOfBirth:    dob,
		Gender:         gender,
		Weight:         weight,
		Address:        address,
		Latitude:       &lat,
		Longitude:      &lng,
		IsAvailable:    available,
		IsVerified:     true,
		TotalDonations: donations,
		Rating:         rating,
	}
}

func seedBloodRequests() []bloodrequests.BloodRequest {
	lat1, lng1 := "19.0706", "72.8698"
	lat2, lng2 := "18.5204", "73.8567"
	return []bloodrequests.BloodRequest{
		{
			ID:            "req-1",
			PatientName:   "Emergency surgery patient",
			BloodType:     blood.OPos,
			UnitsRequired: 2,
			UrgencyLevel:  blood.UrgencyCritical,
			Hospital:      "Mumbai General Hospital",
			ContactPerson: "Dr. Mehta",
			ContactPhone:  "+91 90000 00001",
			Notes:         "Emergency surgery",
			Latitude:      &lat1,
			Longitude:     &lng1,
			Status:        bloodrequests.StatusActive,
			CreatedAt:     time.Date(2024, 8, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            "req-2",
			PatientName:   "Chronic illness patient",
			BloodType:     blood.ANeg,
			UnitsRequired: 1,
			UrgencyLevel:  blood.UrgencyRoutine,
			Hospital:      "Pune City Hospital",
			ContactPerson: "Dr. Kulkarni",
			ContactPhone:  "+91 90000 00002",
			Notes:         "Chronic illness",
			Latitude:      &lat2,
			Longitude:     &lng2,
			Status:        bloodrequests.StatusFulfilled,
			CreatedAt:     time.Date(2024, 8, 9, 14, 30, 0, 0, time.UTC),
		},
	}
}

func seedResponses() []responses.DonorResponse {
	return []responses.DonorResponse{
		{ID: "resp-1", RequestID: "req-1", DonorID: "donor-1", Status: responses.StatusAccepted,
			ResponseTime: time.Date(2024, 8, 10, 10, 15, 0, 0, time.UTC)},
		{ID: "resp-2", RequestID: "req-1", DonorID: "donor-5", Status: responses.StatusPending,
			ResponseTime: time.Date(2024, 8, 10, 10, 20, 0, 0, time.UTC)},
		{ID: "resp-3", RequestID: "req-2", DonorID: "donor-6", Status: responses.StatusAccepted,
			ResponseTime: time.Date(2024, 8, 9, 14, 45, 0, 0, time.UTC)},
	}
}
