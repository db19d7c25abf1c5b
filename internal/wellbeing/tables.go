package wellbeing

// Mood buckets shared by the affirmation and meditation fallbacks.
const (
	bucketPositive = "positive"
	bucketNegative = "negative"
	bucketNeutral  = "neutral"
	bucketStressed = "stressed"
	bucketAnxious  = "anxious"
	bucketExcited  = "excited"
	bucketSad      = "sad"
	bucketHappy    = "happy"
)

// fallbackAffirmations holds ten canned affirmations per bucket.
var fallbackAffirmations = map[string][]string{
	bucketPositive: {
		"I am worthy of all the good things that happen in my life.",
		"I radiate confidence and positive energy wherever I go.",
		"I am grateful for the abundance that surrounds me.",
		"I choose to focus on the positive aspects of my life.",
		"I am capable of achieving great things.",
		"I embrace joy and let it flow through me.",
		"I am surrounded by love and positive relationships.",
		"I celebrate my progress and growth every day.",
		"I trust in my ability to create a beautiful life.",
		"I am deserving of happiness and success.",
	},
	bucketNegative: {
		"I am stronger than I realize and can overcome any challenge.",
		"This difficult moment will pass, and I will emerge stronger.",
		"I am learning and growing from this experience.",
		"I choose to be kind to myself during tough times.",
		"I have the power to change my circumstances.",
		"I am resilient and can handle whatever comes my way.",
		"I release what I cannot control and focus on what I can.",
		"I am worthy of compassion and understanding.",
		"I trust that better days are coming.",
		"I am taking steps toward healing and growth.",
	},
	bucketNeutral: {
		"I am present in this moment and open to new experiences.",
		"I embrace the natural flow of life with grace.",
		"I am at peace with where I am in my journey.",
		"I trust in the timing of my life.",
		"I am open to whatever the day brings.",
		"I find balance and harmony in my daily life.",
		"I appreciate the simple moments that bring me joy.",
		"I am exactly where I need to be right now.",
		"I embrace both the challenges and the joys of life.",
		"I am grateful for the stability and peace in my life.",
	},
	bucketStressed: {
		"I release tension and embrace calm.",
		"I have the power to create peace in my mind.",
		"I breathe in calm and breathe out stress.",
		"I am capable of handling whatever comes my way.",
		"I choose peace over worry.",
		"I am stronger than the stress I feel.",
		"I give myself permission to rest and recharge.",
		"I trust that everything will work out as it should.",
		"I am in control of my response to stress.",
		"I choose to focus on solutions, not problems.",
	},
	bucketAnxious: {
		"I am safe and everything is going to be okay.",
		"I release fear and embrace courage.",
		"I trust in my ability to handle uncertainty.",
		"I am grounded and present in this moment.",
		"I choose peace over anxiety.",
		"I am stronger than my anxious thoughts.",
		"I breathe deeply and find my center.",
		"I trust that I am exactly where I need to be.",
		"I am capable of moving through fear with grace.",
		"I choose to focus on what I can control.",
	},
	bucketExcited: {
		"I embrace this excitement and channel it positively.",
		"I am open to all the wonderful possibilities ahead.",
		"I celebrate this moment of joy and anticipation.",
		"I trust in the positive energy flowing through me.",
		"I am ready for the adventures that await.",
		"I embrace change with enthusiasm and grace.",
		"I am grateful for this feeling of excitement.",
		"I trust that good things are coming my way.",
		"I am open to receiving all the good that life offers.",
		"I celebrate my ability to feel joy and excitement.",
	},
	bucketSad: {
		"I am gentle with myself during times of sadness.",
		"I trust that this feeling will pass in time.",
		"I am worthy of comfort and compassion.",
		"I allow myself to feel and then release my sadness.",
		"I am surrounded by love even when I feel alone.",
		"I trust in my ability to heal and grow.",
		"I am stronger than my sadness.",
		"I choose to focus on the love that surrounds me.",
		"I am deserving of happiness and joy.",
		"I trust that brighter days are ahead.",
	},
	bucketHappy: {
		"I embrace and celebrate this feeling of happiness.",
		"I am grateful for the joy in my life.",
		"I radiate positive energy to those around me.",
		"I am worthy of feeling this happy.",
		"I celebrate the simple moments that bring me joy.",
		"I trust that happiness is my natural state.",
		"I am open to receiving even more joy.",
		"I appreciate the abundance of good in my life.",
		"I choose to focus on the positive aspects of life.",
		"I am grateful for this moment of happiness.",
	},
}

// fallbackMeditations holds ten canned meditation recommendations per bucket.
var fallbackMeditations = map[string][]string{
	bucketPositive: {
		"Take a moment to celebrate your positive energy. This 5-minute gratitude meditation will help you amplify your joy and appreciation for life's blessings.",
		"Your positive mindset is a gift. This uplifting meditation focuses on cultivating gratitude and embracing the abundance in your life.",
		"Embrace your positive feelings with this joyful meditation that guides you to connect with your inner light and radiate positivity outward.",
		"Your positive energy deserves to be nurtured. This meditation helps you maintain your optimistic outlook while grounding you in the present moment.",
		"Celebrate your positive state with this energizing meditation that focuses on embracing joy and sharing your light with others.",
		"Your positive mood is a wonderful foundation. This meditation guides you to deepen your connection with gratitude and positive intentions.",
		"Amplify your positive feelings with this uplifting meditation that focuses on embracing joy and maintaining an optimistic perspective.",
		"Your positive energy is inspiring. This meditation helps you channel that positivity into mindful awareness and inner peace.",
		"Embrace your positive mindset with this gratitude-focused meditation that encourages you to appreciate the beauty in your life.",
		"Your positive feelings are a strength. This meditation guides you to cultivate joy while staying grounded and present.",
	},
	bucketNegative: {
		"When facing challenges, this compassion meditation helps you be gentle with yourself and find inner strength to move forward.",
		"During difficult times, this self-compassion meditation guides you to treat yourself with the same kindness you'd offer a dear friend.",
		"This healing meditation provides gentle support for processing difficult emotions and finding inner peace amid challenges.",
		"When feeling down, this supportive meditation helps you acknowledge your feelings while gently guiding you toward hope and healing.",
		"This comforting meditation offers gentle guidance for those experiencing sadness, helping you find moments of peace within.",
		"During tough moments, this meditation focuses on building resilience and finding strength within your challenges.",
		"This supportive meditation helps you navigate difficult emotions with compassion and understanding for yourself.",
		"When facing hardship, this meditation guides you to find inner resources and cultivate hope for the future.",
		"This gentle meditation provides comfort during challenging times, helping you find peace amid difficulty.",
		"During emotional difficulty, this meditation focuses on self-care and building inner strength to face challenges.",
	},
	bucketNeutral: {
		"In moments of calm, this mindfulness meditation helps you deepen your awareness and appreciation for the present moment.",
		"This balanced meditation guides you to cultivate inner peace and maintain equilibrium in your daily life.",
		"Embrace your centered state with this grounding meditation that helps you stay present and mindful throughout your day.",
		"This peaceful meditation supports your calm mindset, helping you maintain balance and inner harmony.",
		"In your tranquil state, this meditation guides you to deepen your connection with inner peace and mindfulness.",
		"This serene meditation helps you nurture your calm energy and maintain emotional balance throughout your day.",
		"Embrace your peaceful moment with this meditation that focuses on maintaining inner calm and presence.",
		"This balanced meditation supports your centered state, helping you cultivate ongoing mindfulness and peace.",
		"In your calm space, this meditation guides you to deepen your awareness and appreciation for the present.",
		"This tranquil meditation helps you maintain your peaceful state while building resilience for daily life.",
	},
	bucketStressed: {
		"When stress feels overwhelming, this calming meditation guides you to release tension and find inner peace through gentle breathing.",
		"This stress-relief meditation helps you let go of tension and cultivate calm by focusing on your breath and body.",
		"During stressful moments, this meditation provides gentle guidance to release anxiety and find your center.",
		"This soothing meditation helps you manage stress by teaching you to observe your thoughts without judgment.",
		"When stress builds up, this meditation guides you to release tension and reconnect with your inner calm.",
		"This stress-reduction meditation focuses on helping you let go of worry and embrace peace in the present moment.",
		"During overwhelming times, this meditation teaches you to breathe through stress and find your inner strength.",
		"This calming practice helps you release stress by guiding you to focus on relaxation and inner peace.",
		"When stress feels heavy, this meditation helps you lighten your load through mindful breathing and presence.",
		"This stress-relief meditation guides you to release tension and cultivate calm through gentle awareness.",
	},
	bucketAnxious: {
		"When anxiety arises, this grounding meditation helps you find stability and calm by focusing on your breath and body.",
		"This anxiety-relief meditation guides you to observe anxious thoughts with compassion and return to the present moment.",
		"During anxious moments, this meditation helps you find your center by focusing on stability and inner strength.",
		"This calming meditation addresses anxiety by teaching you to breathe through fear and find peace within.",
		"When anxiety feels overwhelming, this meditation guides you to ground yourself and find safety in the present.",
		"This anxiety-support meditation helps you observe anxious thoughts without judgment and return to calm.",
		"During anxious times, this meditation focuses on helping you find stability and peace through mindful breathing.",
		"This gentle meditation addresses anxiety by guiding you to release fear and embrace inner security.",
		"When anxiety arises, this meditation helps you find your center and observe thoughts with compassion.",
		"This anxiety-relief practice guides you to breathe through fear and reconnect with your inner calm.",
	},
	bucketExcited: {
		"Channel your excitement into this energizing meditation that helps you embrace joy while staying grounded and present.",
		"This enthusiastic meditation guides you to celebrate your excitement while maintaining balance and mindfulness.",
		"Embrace your excitement with this joyful meditation that helps you channel positive energy mindfully.",
		"This energizing meditation helps you celebrate your enthusiasm while staying centered and grounded.",
		"Channel your excitement into this mindful meditation that helps you embrace joy with awareness and balance.",
		"This enthusiastic practice guides you to celebrate your positive energy while maintaining inner peace.",
		"Embrace your excitement with this joyful meditation that helps you stay present and mindful in your enthusiasm.",
		"This energizing meditation helps you channel your excitement into positive, mindful awareness.",
		"Celebrate your enthusiasm with this meditation that guides you to embrace joy while staying grounded.",
		"This excited-energy meditation helps you channel your enthusiasm into mindful, positive awareness.",
	},
	bucketSad: {
		"During times of sadness, this compassionate meditation offers gentle support and guides you toward healing and hope.",
		"This comforting meditation provides gentle companionship during sad moments, helping you find peace within.",
		"When sadness visits, this meditation offers gentle guidance to acknowledge your feelings and find inner comfort.",
		"This supportive meditation helps you navigate sadness with compassion and gentle understanding for yourself.",
		"During sad moments, this meditation guides you to find comfort and hope through gentle self-compassion.",
		"This healing meditation offers gentle support during times of sadness, helping you find peace within.",
		"When sadness arises, this compassionate practice guides you to treat yourself with kindness and understanding.",
		"This comforting meditation helps you navigate sad feelings with gentle awareness and self-compassion.",
		"During times of sadness, this meditation offers gentle guidance to find comfort and inner peace.",
		"This supportive practice helps you embrace sad feelings with compassion while finding hope within.",
	},
	bucketHappy: {
		"Celebrate your happiness with this joyful meditation that helps you deepen your appreciation for life's blessings.",
		"This gratitude meditation amplifies your happy feelings by focusing on appreciation and positive awareness.",
		"Embrace your happiness with this uplifting meditation that guides you to celebrate joy and share positive energy.",
		"This joyful meditation helps you deepen your happy feelings through mindful appreciation and gratitude.",
		"Celebrate your positive state with this meditation that focuses on embracing joy and maintaining happiness.",
		"This uplifting practice guides you to amplify your happiness through mindful awareness and gratitude.",
		"Embrace your joyful feelings with this meditation that helps you celebrate happiness and positive energy.",
		"This gratitude-focused meditation helps you deepen your happy state through appreciation and mindfulness.",
		"Celebrate your happiness with this joyful practice that guides you to embrace positive feelings mindfully.",
		"This uplifting meditation helps you amplify your happy feelings through gratitude and positive awareness.",
	},
}
