package database

import (
	"log"

	"github.com/vraj2305/cancer_scanner/models"
)

// SeedQuizContent loads the default screening questionnaire and risk brackets
// on first boot. Existing content is never touched so admin edits survive
// restarts.
func SeedQuizContent() {
	seedQuestions()
	seedRiskAssessments()
}

func seedQuestions() {
	var count int64
	if err := DB.Model(&models.Question{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for quiz questions: %v", err)
		return
	}
	if count > 0 {
		log.Println("Quiz questions already seeded.")
		return
	}

	questions := []models.Question{
		// general screening
		{
			QuestionText: "Have you noticed any new moles, or changes in the size, shape or color of existing moles?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"],"category_hints":{"skin":2}}`,
			Weight:       5,
			Category:     "general",
		},
		{
			QuestionText: "Have you experienced blood in your urine or persistent pain in your side or lower back?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"],"category_hints":{"kidney":2}}`,
			Weight:       5,
			Category:     "general",
		},
		{
			QuestionText: "Do you suffer from frequent headaches, blurred vision or unexplained dizziness?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"],"category_hints":{"brain":2}}`,
			Weight:       5,
			Category:     "general",
		},
		{
			QuestionText: "Do you have mouth sores or white/red patches in your mouth that have not healed within two weeks?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"],"category_hints":{"oral":2}}`,
			Weight:       5,
			Category:     "general",
		},
		{
			QuestionText: "Have you felt a lump or noticed changes in the shape or skin of your breast?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"],"category_hints":{"breast":2}}`,
			Weight:       5,
			Category:     "general",
		},
		{
			QuestionText: "Have you experienced unexplained weight loss in the last six months?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"],"category_hints":{"kidney":1,"brain":1}}`,
			Weight:       4,
			Category:     "general",
		},
		{
			QuestionText: "Do you smoke or use tobacco products?",
			QuestionType: "select",
			Options:      `{"options":["Never","Occasionally","Regularly","Heavily"],"category_hints":{"oral":1}}`,
			Weight:       6,
			Category:     "general",
		},
		{
			QuestionText: "On a scale of 0 to 10, how would you rate your overall fatigue recently?",
			QuestionType: "range",
			Options:      `{"min":0,"max":10,"step":1}`,
			Weight:       4,
			Category:     "general",
		},

		// skin
		{
			QuestionText: "Does the mole or spot have irregular, ragged or blurred borders?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       8,
			Category:     "skin",
		},
		{
			QuestionText: "Is the spot larger than 6mm (about the size of a pencil eraser)?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       7,
			Category:     "skin",
		},
		{
			QuestionText: "How often is the affected area exposed to direct sunlight?",
			QuestionType: "select",
			Options:      `{"options":["Rarely","Sometimes","Often","Constantly"]}`,
			Weight:       5,
			Category:     "skin",
		},

		// kidney
		{
			QuestionText: "Have you noticed visible blood in your urine (pink, red or cola-colored)?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       9,
			Category:     "kidney",
		},
		{
			QuestionText: "Do you have persistent pain in your side or lower back that is not injury related?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       7,
			Category:     "kidney",
		},
		{
			QuestionText: "On a scale of 0 to 10, how severe is the pain at its worst?",
			QuestionType: "range",
			Options:      `{"min":0,"max":10,"step":1}`,
			Weight:       5,
			Category:     "kidney",
		},

		// brain
		{
			QuestionText: "Are your headaches worse in the morning or do they wake you from sleep?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       8,
			Category:     "brain",
		},
		{
			QuestionText: "Have you experienced seizures, memory problems or changes in speech?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       9,
			Category:     "brain",
		},
		{
			QuestionText: "How frequently do the headaches occur?",
			QuestionType: "select",
			Options:      `{"options":["Rarely","Weekly","Several times a week","Daily"]}`,
			Weight:       5,
			Category:     "brain",
		},

		// oral
		{
			QuestionText: "Do you have a sore or irritation in your mouth that bleeds easily and does not heal?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       8,
			Category:     "oral",
		},
		{
			QuestionText: "Have you had difficulty chewing, swallowing or moving your jaw or tongue?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       7,
			Category:     "oral",
		},
		{
			QuestionText: "How many alcoholic drinks do you have in a typical week?",
			QuestionType: "range",
			Options:      `{"min":0,"max":30,"step":1}`,
			Weight:       4,
			Category:     "oral",
		},

		// breast
		{
			QuestionText: "Is the lump hard, painless and fixed in place?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       9,
			Category:     "breast",
		},
		{
			QuestionText: "Have you noticed nipple discharge, inversion or skin dimpling?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       8,
			Category:     "breast",
		},
		{
			QuestionText: "Do you have a first-degree relative who was diagnosed with breast cancer?",
			QuestionType: "boolean",
			Options:      `{"options":["Yes","No"]}`,
			Weight:       6,
			Category:     "breast",
		},
	}

	if err := DB.Create(&questions).Error; err != nil {
		log.Fatalf("🔥 Failed to seed quiz questions: %v", err)
		return
	}
	log.Printf("✅ Seeded %d quiz questions", len(questions))
}

func seedRiskAssessments() {
	var count int64
	if err := DB.Model(&models.RiskAssessment{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for risk assessments: %v", err)
		return
	}
	if count > 0 {
		log.Println("Risk assessments already seeded.")
		return
	}

	str := func(s string) *string { return &s }

	assessments := []models.RiskAssessment{
		{
			RiskLevel:    "Low",
			Advice:       "Your answers do not indicate elevated risk factors. Keep up regular self-examinations and routine screenings.",
			MinScore:     0,
			MaxScore:     14,
			FoodsToEat:   `["Leafy greens","Berries","Whole grains","Fatty fish"]`,
			FoodsToAvoid: `["Processed meats","Sugary drinks"]`,
			Precautions:  `["Maintain a healthy weight","Exercise regularly","Schedule routine checkups"]`,
		},
		{
			RiskLevel:    "Moderate",
			Advice:       "Some of your answers suggest risk factors worth discussing with a doctor. Consider booking a screening appointment.",
			MinScore:     15,
			MaxScore:     29,
			FoodsToEat:   `["Cruciferous vegetables","Legumes","Green tea","Citrus fruits"]`,
			FoodsToAvoid: `["Alcohol","Charred or smoked foods","Excess red meat"]`,
			Precautions:  `["Book a screening appointment","Track any changing symptoms","Reduce tobacco and alcohol use"]`,
		},
		{
			RiskLevel:    "High",
			Advice:       "Your answers indicate several significant risk factors. Please consult a healthcare professional promptly for a clinical evaluation.",
			MinScore:     30,
			MaxScore:     100,
			FoodsToEat:   `["Antioxidant-rich vegetables","Turmeric","Garlic","Nuts and seeds"]`,
			FoodsToAvoid: `["Alcohol","Processed foods","Refined sugar"]`,
			Precautions:  `["See a doctor as soon as possible","Bring a record of your symptoms","Do not delay diagnostic testing"]`,
		},
		{
			RiskLevel:    "High",
			Advice:       "Your skin-related answers warrant a dermatologist visit. Changing moles should always be examined professionally.",
			MinScore:     30,
			MaxScore:     100,
			FoodsToEat:   `["Tomatoes","Carrots","Green leafy vegetables"]`,
			FoodsToAvoid: `["Alcohol","Processed foods"]`,
			Precautions:  `["See a dermatologist promptly","Photograph moles to track changes","Use broad-spectrum sunscreen daily"]`,
			CancerType:   str("skin"),
		},
		{
			RiskLevel:    "High",
			Advice:       "Your answers about urinary and flank symptoms should be evaluated by a urologist without delay.",
			MinScore:     30,
			MaxScore:     100,
			FoodsToEat:   `["Water-rich fruits","Cabbage","Bell peppers"]`,
			FoodsToAvoid: `["Excess salt","Processed meats"]`,
			Precautions:  `["Consult a urologist promptly","Stay well hydrated","Monitor blood pressure"]`,
			CancerType:   str("kidney"),
		},
		{
			RiskLevel:    "High",
			Advice:       "Neurological symptoms like yours need prompt medical imaging. Please see a neurologist.",
			MinScore:     30,
			MaxScore:     100,
			FoodsToEat:   `["Omega-3 rich fish","Blueberries","Walnuts"]`,
			FoodsToAvoid: `["Alcohol","Highly processed foods"]`,
			Precautions:  `["See a neurologist promptly","Keep a headache diary","Avoid driving if experiencing seizures"]`,
			CancerType:   str("brain"),
		},
		{
			RiskLevel:    "High",
			Advice:       "Persistent mouth sores and difficulty swallowing should be examined by a dentist or ENT specialist.",
			MinScore:     30,
			MaxScore:     100,
			FoodsToEat:   `["Soft cooked vegetables","Yogurt","Smoothies"]`,
			FoodsToAvoid: `["Tobacco","Alcohol","Very spicy foods"]`,
			Precautions:  `["Visit a dentist or ENT specialist","Stop tobacco use","Limit alcohol"]`,
			CancerType:   str("oral"),
		},
		{
			RiskLevel:    "High",
			Advice:       "Breast changes like the ones you describe should be clinically examined and imaged promptly.",
			MinScore:     30,
			MaxScore:     100,
			FoodsToEat:   `["Cruciferous vegetables","Soy foods","Flaxseed"]`,
			FoodsToAvoid: `["Alcohol","High-fat processed foods"]`,
			Precautions:  `["Book a clinical breast exam","Ask about mammography","Note any family history for your doctor"]`,
			CancerType:   str("breast"),
		},
	}

	if err := DB.Create(&assessments).Error; err != nil {
		log.Fatalf("🔥 Failed to seed risk assessments: %v", err)
		return
	}
	log.Printf("✅ Seeded %d risk assessments", len(assessments))
}
