package main

import "github.com/alanluk2226/Workoutapp/internal/models"

type seedCoach struct {
	Name            string
	Email           string
	Phone           string
	Specializations []models.Discipline
	Bio             string
	Experience      string
	Image           string
	EmploymentType  string
}

type seedCourse struct {
	Name        string
	Type        models.Discipline
	CoachEmail  string
	Day         models.Weekday
	Start       string
	End         string
	Max         int
	Description string
}

var coaches = []seedCoach{
	{
		Name:            "Amy Yip",
		Email:           "amy.yip@fitness.com",
		Phone:           "123456789",
		Specializations: []models.Discipline{models.DisciplineYoga},
		Bio:             "5 years of yoga experience, millions of yoga video teaching views on YouTube platform",
		Experience:      "5 years yoga teaching experience",
		Image:           "/images/coaches/Amy.png",
		EmploymentType:  models.EmploymentPartTime,
	},
	{
		Name:            "Jade An",
		Email:           "jade.an@fitness.com",
		Phone:           "213456789",
		Specializations: []models.Discipline{models.DisciplineBodyweight, models.DisciplineHII, models.DisciplineCircuitTraining},
		Bio:             "A former athlete who has won 10 gold medals in all-around sports, 18 silver medals in weightlifting, and 30 bronze medals in swimming competitions",
		Experience:      "8 years professional training",
		Image:           "/images/coaches/Jade.png",
		EmploymentType:  models.EmploymentFullTime,
	},
	{
		Name:            "Alan Chow",
		Email:           "alan.chow@fitness.com",
		Phone:           "543216789",
		Specializations: []models.Discipline{models.DisciplinePilates, models.DisciplineBodyweight, models.DisciplineHII},
		Bio:             "With extensive experience in Pilates teaching, increase muscle strength and flexibility through Pilates core training",
		Experience:      "6 years Pilates instruction",
		Image:           "/images/coaches/Alan.png",
		EmploymentType:  models.EmploymentFullTime,
	},
	{
		Name:            "Peter Zhang",
		Email:           "peter.zhang@fitness.com",
		Phone:           "321456789",
		Specializations: []models.Discipline{models.DisciplineCardioKickboxing},
		Bio:             "Won two championships in free fighting and won 12 consecutive victories in lightweight boxing",
		Experience:      "10 years martial arts training",
		Image:           "/images/coaches/Peter.png",
		EmploymentType:  models.EmploymentFullTime,
	},
	{
		Name:            "John Doe",
		Email:           "john.doe@fitness.com",
		Phone:           "432156789",
		Specializations: []models.Discipline{models.DisciplineZumba},
		Bio:             "Won the third place in the Brazilian Zumba competition, has many years of dance experience, and is an orthodox local dance",
		Experience:      "7 years dance instruction",
		Image:           "/images/coaches/John.png",
		EmploymentType:  models.EmploymentPartTime,
	},
}

var courses = []seedCourse{
	{"Morning Yoga Flow", models.DisciplineYoga, "amy.yip@fitness.com", models.Monday, "06:00", "08:00", 15,
		"Start your day with a peaceful yoga session to improve flexibility and mental clarity"},
	{"Bodyweight Bootcamp", models.DisciplineBodyweight, "jade.an@fitness.com", models.Monday, "09:00", "10:00", 20,
		"Full body workout using your body weight - no equipment needed!"},
	{"HIIT Fat Burn", models.DisciplineHII, "jade.an@fitness.com", models.Tuesday, "09:00", "10:00", 18,
		"High intensity interval training for maximum fat burn and cardiovascular improvement"},
	{"Circuit Training", models.DisciplineCircuitTraining, "jade.an@fitness.com", models.Wednesday, "09:00", "10:00", 22,
		"Rotate through different exercise stations for a complete full-body workout"},
	{"Pilates Core Strength", models.DisciplinePilates, "alan.chow@fitness.com", models.Monday, "14:00", "15:00", 12,
		"Focus on core strength, flexibility, and overall body conditioning"},
	{"Cardio Kickboxing", models.DisciplineCardioKickboxing, "peter.zhang@fitness.com", models.Monday, "19:00", "21:00", 25,
		"Learn kickboxing techniques while burning calories and improving coordination"},
	{"Zumba Dance Party", models.DisciplineZumba, "john.doe@fitness.com", models.Tuesday, "11:00", "12:00", 30,
		"Fun dance workout with Latin rhythms - great for all fitness levels!"},
}
