package knowledge

import "github.com/bisheshoggo/symtriage/internal/triage"

// Category ids.
const (
	CategoryCommonSymptoms = "common-symptoms"
	CategoryRespiratory    = "respiratory"
	CategoryFirstAid       = "first-aid"
	CategoryEmergency      = "emergency"
	CategoryMaternalHealth = "maternal-health"
	CategoryChronicDisease = "chronic-disease"
)

func bi(en, bn string) triage.Text {
	return triage.Text{Primary: en, Secondary: bn}
}

var builtinCategories = []Category{
	{CategoryCommonSymptoms, bi("Common Symptoms", "সাধারণ লক্ষণ")},
	{CategoryRespiratory, bi("Respiratory Issues", "শ্বাসযন্ত্রের সমস্যা")},
	{CategoryFirstAid, bi("First Aid", "প্রাথমিক চিকিৎসা")},
	{CategoryEmergency, bi("Emergency", "জরুরি")},
	{CategoryMaternalHealth, bi("Maternal Health", "মাতৃস্বাস্থ্য")},
	{CategoryChronicDisease, bi("Chronic Disease", "দীর্ঘমেয়াদী রোগ")},
}

var builtinArticles = []Article{
	{
		ID:       "fever-basics",
		Category: CategoryCommonSymptoms,
		Title:    bi("Fever - When to Worry", "জ্বর - কখন চিন্তিত হবেন"),
		Content: bi(
			"Fever is body temperature above 100.4°F (38°C). Mild fever helps fight infection. Seek medical help if fever is above 103°F, lasts more than 3 days, or accompanied by severe symptoms.",
			"জ্বর হল শরীরের তাপমাত্রা ১০০.৪°ফা (৩৮°সে) এর উপরে। হালকা জ্বর সংক্রমণের বিরুদ্ধে লড়াই করতে সাহায্য করে। জ্বর ১০৩°ফা এর উপরে হলে, ৩ দিনের বেশি স্থায়ী হলে বা গুরুতর লক্ষণ থাকলে চিকিৎসা নিন।",
		),
		Keywords: []string{"fever", "temperature", "জ্বর"},
	},
	{
		ID:       "diarrhea-treatment",
		Category: CategoryCommonSymptoms,
		Title:    bi("Diarrhea - Home Treatment", "ডায়রিয়া - ঘরোয়া চিকিৎসা"),
		Content: bi(
			"Stay hydrated with ORS (Oral Rehydration Solution). Mix 6 teaspoons sugar + 1/2 teaspoon salt in 1 liter clean water. Drink frequently. Avoid dairy and spicy foods. Seek help if blood in stool or severe dehydration.",
			"ওআরএস (মুখে খাওয়ার স্যালাইন) দিয়ে শরীরে পানির পরিমাণ ঠিক রাখুন। ১ লিটার বিশুদ্ধ পানিতে ৬ চা চামচ চিনি + ১/২ চা চামচ লবণ মিশান। ঘন ঘন পান করুন। দুধ ও ঝাল খাবার এড়িয়ে চলুন। মলে রক্ত বা মারাত্মক পানিশূন্যতা হলে সাহায্য নিন।",
		),
		Keywords: []string{"diarrhea", "dehydration", "ors", "ডায়রিয়া", "স্যালাইন"},
	},
	{
		ID:       "cough-cold",
		Category: CategoryRespiratory,
		Title:    bi("Cough and Cold", "কাশি ও সর্দি"),
		Content: bi(
			"Most colds resolve in 7-10 days. Rest, drink warm fluids, gargle with salt water. Honey can soothe cough (not for babies under 1 year). See doctor if difficulty breathing, chest pain, or high fever.",
			"বেশিরভাগ সর্দি ৭-১০ দিনে সেরে যায়। বিশ্রাম নিন, গরম তরল পান করুন, লবণ পানিতে গার্গল করুন। মধু কাশি কমায় (১ বছরের কম বাচ্চাদের জন্য নয়)। শ্বাস নিতে কষ্ট, বুকে ব্যথা বা তীব্র জ্বর হলে ডাক্তার দেখান।",
		),
		Keywords: []string{"cough", "cold", "flu", "কাশি", "সর্দি"},
	},
	{
		ID:       "wounds-cuts",
		Category: CategoryFirstAid,
		Title:    bi("Wound Care", "ক্ষত পরিচর্যা"),
		Content: bi(
			"Clean wound with clean water and soap. Apply pressure if bleeding. Cover with clean cloth or bandage. Change dressing daily. Watch for signs of infection: increased pain, redness, swelling, pus, or fever.",
			"ক্ষতটি পরিষ্কার পানি ও সাবান দিয়ে ধুয়ে নিন। রক্তপাত হলে চাপ দিন। পরিষ্কার কাপড় বা ব্যান্ডেজ দিয়ে ঢেকে রাখুন। প্রতিদিন ড্রেসিং পরিবর্তন করুন। সংক্রমণের লক্ষণ দেখুন: ব্যথা বৃদ্ধি, লাল হওয়া, ফোলা, পুঁজ বা জ্বর।",
		),
		Keywords: []string{"wound", "cut", "bleeding", "ক্ষত", "রক্তপাত"},
	},
	{
		ID:       "snake-bite",
		Category: CategoryEmergency,
		Title:    bi("Snake Bite First Aid", "সাপে কাটা প্রাথমিক চিকিৎসা"),
		Content: bi(
			"IMMEDIATELY go to hospital. Keep affected limb still and below heart level. Remove jewelry/tight clothing. DO NOT cut wound, apply tourniquet, or try to suck venom. Note snake appearance if safe to do so.",
			"অবিলম্বে হাসপাতালে যান। ক্ষতিগ্রস্ত অঙ্গটি স্থির রাখুন এবং হৃদয়ের নিচে রাখুন। গহনা/আঁটসাঁট পোশাক সরিয়ে ফেলুন। ক্ষত কাটবেন না, টর্নিকেট প্রয়োগ করবেন না বা বিষ চুষে বের করার চেষ্টা করবেন না। নিরাপদ হলে সাপের চেহারা মনে রাখুন।",
		),
		Keywords: []string{"snake", "bite", "venom", "emergency", "সাপ", "কামড়"},
	},
	{
		ID:       "pregnancy-warning",
		Category: CategoryMaternalHealth,
		Title:    bi("Pregnancy Warning Signs", "গর্ভাবস্থায় বিপদ চিহ্ন"),
		Content: bi(
			"Seek immediate help for: severe headache, vision problems, severe abdominal pain, vaginal bleeding, fluid leakage, decreased fetal movement, high fever, severe swelling of face/hands.",
			"অবিলম্বে সাহায্য নিন যদি: তীব্র মাথাব্যথা, দৃষ্টি সমস্যা, তীব্র পেট ব্যথা, যোনিপথে রক্তপাত, তরল নিঃসরণ, শিশুর নড়াচড়া কমে যাওয়া, তীব্র জ্বর, মুখ/হাত মারাত্মক ফুলে যাওয়া।",
		),
		Keywords: []string{"pregnancy", "maternal", "warning", "গর্ভাবস্থা", "মা"},
	},
	{
		ID:       "chest-pain",
		Category: CategoryEmergency,
		Title:    bi("Chest Pain - Emergency", "বুকে ব্যথা - জরুরি"),
		Content: bi(
			"Chest pain can be serious. Call for emergency help if pain is severe, crushing, spreading to arm/jaw/back, with sweating, nausea, or shortness of breath. Could be heart attack. Chew aspirin if available while waiting.",
			"বুকে ব্যথা গুরুতর হতে পারে। জরুরি সাহায্য ডাকুন যদি ব্যথা তীব্র হয়, চাপা লাগে, বাহু/চোয়াল/পিঠে ছড়ায়, ঘাম, বমি বমি ভাব বা শ্বাসকষ্ট হয়। হার্ট অ্যাটাক হতে পারে। অপেক্ষা করার সময় অ্যাসপিরিন চিবান।",
		),
		Keywords: []string{"chest pain", "heart attack", "cardiac", "বুকে ব্যথা", "হার্ট"},
	},
	{
		ID:       "diabetes-basics",
		Category: CategoryChronicDisease,
		Title:    bi("Diabetes Management", "ডায়াবেটিস ব্যবস্থাপনা"),
		Content: bi(
			"Monitor blood sugar regularly. Take medications as prescribed. Eat balanced diet with controlled portions. Exercise regularly. Check feet daily for wounds. Watch for symptoms: increased thirst, frequent urination, blurred vision, fatigue.",
			"নিয়মিত রক্তে চিনি পরীক্ষা করুন। নির্দেশিত ওষুধ খান। নিয়ন্ত্রিত পরিমাণে সুষম খাবার খান। নিয়মিত ব্যায়াম করুন। প্রতিদিন পায়ে ক্ষত আছে কিনা পরীক্ষা করুন। লক্ষণগুলি লক্ষ্য করুন: অতিরিক্ত তৃষ্ণা, ঘন ঘন প্রস্রাব, ঝাপসা দৃষ্টি, ক্লান্তি।",
		),
		Keywords: []string{"diabetes", "blood sugar", "insulin", "ডায়াবেটিস", "চিনি"},
	},
}
