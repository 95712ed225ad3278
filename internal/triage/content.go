package triage

// Reasons, in the order they are checked within each tier.
var (
	reasonChestPain = Text{
		"Chest pain detected - possible cardiac emergency",
		"বুকে ব্যথা সনাক্ত - হৃদরোগের জরুরি অবস্থা সম্ভব",
	}
	reasonBreathing = Text{
		"Severe breathing difficulty",
		"তীব্র শ্বাসকষ্ট",
	}
	reasonEmergencySymptom = Text{
		"Emergency warning symptom reported",
		"জরুরি সতর্কতামূলক লক্ষণ জানানো হয়েছে",
	}
	reasonExtremeSeverity = Text{
		"Extremely high pain/severity level",
		"অত্যন্ত উচ্চ ব্যথা/তীব্রতা স্তর",
	}
	reasonDangerousFever = Text{
		"Dangerously high fever",
		"বিপজ্জনক উচ্চ জ্বর",
	}
	reasonPregnancySevere = Text{
		"Severe symptoms during pregnancy",
		"গর্ভাবস্থায় তীব্র লক্ষণ",
	}

	reasonHighRiskSymptom = Text{
		"High-risk symptoms reported",
		"উচ্চ ঝুঁকির লক্ষণ জানানো হয়েছে",
	}
	reasonHighFever = Text{
		"High fever above 102°F",
		"১০২°ফা এর উপরে উচ্চ জ্বর",
	}
	reasonHighSeverity = Text{
		"High symptom severity",
		"উচ্চ লক্ষণ তীব্রতা",
	}
	reasonChronic = Text{
		"Pre-existing chronic condition",
		"পূর্ব-বিদ্যমান দীর্ঘমেয়াদী অবস্থা",
	}

	reasonMediumSymptom = Text{
		"Symptoms that should be evaluated by a doctor",
		"ডাক্তার দ্বারা মূল্যায়ন করা উচিত এমন লক্ষণ",
	}
	reasonModerateFever = Text{
		"Moderate fever",
		"মধ্যম জ্বর",
	}
	reasonModerateSeverity = Text{
		"Moderate symptom severity",
		"মধ্যম লক্ষণ তীব্রতা",
	}
	reasonLongDuration = Text{
		"Symptoms persisting for over a week",
		"এক সপ্তাহেরও বেশি সময় ধরে লক্ষণ",
	}
)

// lowReasons are the generic reasons attached to every low-tier result.
var lowReasons = []Text{
	{"Low severity symptoms", "কম তীব্রতার লক্ষণ"},
	{"No emergency indicators", "কোন জরুরি ইঙ্গিত নেই"},
	{"Manageable with home care", "ঘরোয়া যত্নে পরিচালনাযোগ্য"},
}

// guidance is the fixed content attached to a tier regardless of input.
type guidance struct {
	urgency        Text
	recommendation Text
	advice         []Text
	warningSigns   []Text
	explanation    Text
}

var tierGuidance = map[RiskLevel]guidance{
	RiskEmergency: {
		urgency: Text{"IMMEDIATE EMERGENCY", "জরুরি জরুরি"},
		recommendation: Text{
			"Call emergency services NOW or go to nearest hospital immediately",
			"এখনই জরুরি সেবায় কল করুন বা অবিলম্বে নিকটতম হাসপাতালে যান",
		},
		advice: []Text{
			{"Do NOT wait", "অপেক্ষা করবেন না"},
			{"Call emergency hotline: 999", "জরুরি হটলাইনে কল করুন: ৯৯৯"},
			{"Have someone accompany you", "কাউকে সাথে নিন"},
			{"Bring any medications you're taking", "আপনার ওষুধ সাথে নিন"},
		},
		warningSigns: []Text{
			{"Loss of consciousness", "অজ্ঞান হওয়া"},
			{"Severe chest pain", "তীব্র বুকে ব্যথা"},
			{"Difficulty breathing", "শ্বাসকষ্ট"},
			{"Uncontrolled bleeding", "অনিয়ন্ত্রিত রক্তপাত"},
		},
		explanation: Text{
			"This is a life-threatening emergency requiring immediate medical attention. Do not delay seeking help.",
			"এটি একটি জীবন-হুমকির জরুরী অবস্থা যা অবিলম্বে চিকিৎসা মনোযোগ প্রয়োজন। সাহায্য নিতে বিলম্ব করবেন না।",
		},
	},
	RiskHigh: {
		urgency: Text{
			"URGENT - Seek medical care within 24 hours",
			"জরুরি - ২৪ ঘণ্টার মধ্যে চিকিৎসা নিন",
		},
		recommendation: Text{
			"Visit a doctor or healthcare facility within 24 hours",
			"২৪ ঘণ্টার মধ্যে ডাক্তার বা স্বাস্থ্য কেন্দ্রে যান",
		},
		advice: []Text{
			{"Monitor symptoms closely", "লক্ষণ নিবিড়ভাবে পর্যবেক্ষণ করুন"},
			{"Keep track of temperature", "তাপমাত্রা নোট রাখুন"},
			{"Stay hydrated", "প্রচুর পানি পান করুন"},
			{"Rest adequately", "পর্যাপ্ত বিশ্রাম নিন"},
			{"Contact local health worker", "স্থানীয় স্বাস্থ্যকর্মীর সাথে যোগাযোগ করুন"},
		},
		warningSigns: []Text{
			{"Symptoms worsen rapidly", "লক্ষণ দ্রুত খারাপ হয়"},
			{"Fever increases above 103°F", "জ্বর ১০৩°ফা এর উপরে বৃদ্ধি পায়"},
			{"New severe symptoms appear", "নতুন তীব্র লক্ষণ দেখা দেয়"},
			{"Unable to keep fluids down", "তরল খাবার খেতে পারছেন না"},
		},
		explanation: Text{
			"Your symptoms indicate a potentially serious condition that requires medical evaluation within 24 hours.",
			"আপনার লক্ষণগুলি একটি সম্ভাব্য গুরুতর অবস্থা নির্দেশ করে যার জন্য ২৪ ঘন্টার মধ্যে চিকিৎসা মূল্যায়ন প্রয়োজন।",
		},
	},
	RiskMedium: {
		urgency: Text{"See a doctor within 2-3 days", "২-৩ দিনের মধ্যে ডাক্তার দেখান"},
		recommendation: Text{
			"Schedule a medical consultation soon. Symptoms should be evaluated.",
			"শীঘ্রই চিকিৎসা পরামর্শ নিন। লক্ষণগুলি মূল্যায়ন করা উচিত।",
		},
		advice: []Text{
			{"Monitor symptoms daily", "প্রতিদিন লক্ষণ পর্যবেক্ষণ করুন"},
			{"Stay well hydrated", "ভালভাবে হাইড্রেটেড থাকুন"},
			{"Get adequate rest", "পর্যাপ্ত বিশ্রাম নিন"},
			{"Avoid strenuous activities", "কঠিন কাজ এড়িয়ে চলুন"},
			{"Keep a symptom diary", "লক্ষণ ডায়েরি রাখুন"},
		},
		warningSigns: []Text{
			{"Symptoms suddenly worsen", "লক্ষণ হঠাৎ খারাপ হয়"},
			{"Fever develops", "জ্বর হয়"},
			{"Severe pain begins", "তীব্র ব্যথা শুরু হয়"},
			{"New concerning symptoms", "নতুন উদ্বেগজনক লক্ষণ"},
		},
		explanation: Text{
			"Your symptoms warrant medical attention soon. Schedule a doctor visit within 2-3 days.",
			"আপনার লক্ষণগুলি শীঘ্রই চিকিৎসা মনোযোগ নিশ্চিত করে। ২-৩ দিনের মধ্যে ডাক্তার ভিজিট নির্ধারণ করুন।",
		},
	},
	RiskLow: {
		urgency: Text{"Monitor and self-care", "পর্যবেক্ষণ ও স্ব-পরিচর্যা"},
		recommendation: Text{
			"These symptoms are likely minor. Monitor and practice self-care. See a doctor if worsens.",
			"এই লক্ষণগুলি সম্ভবত ছোটখাটো। পর্যবেক্ষণ করুন এবং স্ব-পরিচর্যা অনুশীলন করুন। খারাপ হলে ডাক্তার দেখান।",
		},
		advice: []Text{
			{"Rest and stay hydrated", "বিশ্রাম নিন এবং হাইড্রেটেড থাকুন"},
			{"Take over-the-counter medications if needed", "প্রয়োজনে ওভার-দ্য-কাউন্টার ওষুধ নিন"},
			{"Maintain good hygiene", "ভাল স্বাস্থ্যবিধি বজায় রাখুন"},
			{"Eat nutritious foods", "পুষ্টিকর খাবার খান"},
			{"Monitor for any changes", "যেকোনো পরিবর্তনের জন্য পর্যবেক্ষণ করুন"},
		},
		warningSigns: []Text{
			{"Symptoms persist beyond a week", "লক্ষণ এক সপ্তাহের বেশি স্থায়ী হয়"},
			{"Fever develops", "জ্বর হয়"},
			{"Pain increases", "ব্যথা বৃদ্ধি পায়"},
			{"New symptoms appear", "নতুন লক্ষণ দেখা দেয়"},
		},
		explanation: Text{
			"Your symptoms appear manageable with self-care. Monitor closely and seek help if they worsen.",
			"আপনার লক্ষণগুলি স্ব-যত্নের সাথে পরিচালনযোগ্য বলে মনে হচ্ছে। নিবিড়ভাবে পর্যবেক্ষণ করুন এবং খারাপ হলে সাহায্য নিন।",
		},
	},
}
