package recommendations

import (
	"strconv"
	"strings"
)

const promptTemplate = `You are an expert environmental advisor providing personalized, detailed advice for carbon footprint reduction.
Analyze the user's habit data and their calculated total *annual* carbon footprint ({{RESULT}} tonnes CO2e/year) presented below.

User Habit Data and Context:

Estimated Annual Carbon Footprint: {{RESULT}} tonnes CO2e/year.

Habit Data Breakdown (based on user input):
- Transport:
    - Weekly Car Travel: {{TRANSPORT_CAR_KM}} km (on a scale of 0-500 km)
    - Weekly Public Transport: {{TRANSPORT_PUBLIC_KM}} km (on a scale of 0-500 km)
    - Annual Domestic Flights: {{TRANSPORT_DOMESTIC_FLIGHTS}} flights (of 0-20 flights)
    - Annual International Flights: {{TRANSPORT_INTERNATIONAL_FLIGHTS}} flights (of 0-10 flights) - *Note: Flights usually have a very high CO2 impact per event.*
- Food:
    - Weekly Red Meat Consumption: {{FOOD_RED_MEAT}} times (of 0-14 times) - *Note: Red meat generally has a high carbon footprint.*
    - Weekly White Meat Consumption: {{FOOD_WHITE_MEAT}} times (of 0-14 times)
    - Weekly Dairy Consumption: {{FOOD_DAIRY}} times (of 0-21 times)
    - Fully Vegetarian Meals per Week: {{FOOD_VEGETARIAN}} times (of 0-21 times)
- Energy Use:
    - Daily Appliance/Light Use at Home: {{ENERGY_APPLIANCE_HOURS}} hours (of 0-24 hrs)
    - Average Light Bulbs On Simultaneously: {{ENERGY_LIGHT_BULBS}} bulbs (of 0-20 bulbs)
    - Monthly Bottled Gas (LPG) Use: {{ENERGY_GAS_TANKS}} tanks (of 0-5)
    - Daily Heating/Air Conditioning Use: {{ENERGY_HVAC_HOURS}} hours (of 0-24 hrs)
- Waste Generation:
    - Weekly Bags of General Trash: {{WASTE_TRASH_BAGS}} bags (of 0-10 bags)
    - Weekly Bags of Food Waste (Organics): {{WASTE_FOOD_WASTE}} bags (of 0-10 bags)
    - Plastic Bottles/Containers Discarded Weekly: {{WASTE_PLASTIC_BOTTLES}} units (of 0-50)
    - Paper/Cardboard Packages Discarded Weekly: {{WASTE_PAPER_PACKAGES}} units (of 0-10)

Your Task:
Generate a structured set of recommendations to help the user significantly reduce their *annual* carbon footprint. You must provide:
1.  One (1) high-impact general recommendation. This recommendation must be categorized as "General".
2.  Two (2) specific recommendations for each of the following main categories: "Transport", "Food", "Energy" and "Waste".

**Important: For EACH recommendation (both the general one and the category-specific ones), include a brief explanation within the suggestion text itself about *why* that action matters or *how* it helps reduce the footprint (e.g., by mentioning the high impact of the area addressed).**

Strict Output Instructions (JSON):
1.  The output must be a single JSON object.
2.  The root JSON object must have two main keys: "global_recommendation" and "category_recommendations".
3.  The value of "global_recommendation" must be an object with two keys:
    - "category": Always the string "General".
    - "suggestion": The text of the general recommendation, including its explanation.
4.  The value of "category_recommendations" must be an object with four keys, one per main category: "transport", "food", "energy", "waste".
5.  The value of each of these category keys (e.g., "transport") must be a *list* containing exactly *two (2)* recommendation objects.
6.  Each recommendation object inside these lists must have exactly one key:
    - "suggestion": The text of the specific recommendation for that category, including its explanation.

Expected Example JSON Format:
{{EXAMPLE_JSON}}

CRITICAL: Do NOT include any introductory text, explanations outside the suggestions, apologies, closing remarks, or markdown formatting (such as triple-backtick json fences) before or after the JSON object. Your complete output must be ONLY the JSON structure as described and exemplified.

Generate the recommendations now.`

// promptExampleJSON is the literal example embedded in the prompt. It is the
// canonical response shape: category items carry only a suggestion text.
const promptExampleJSON = `{
  "global_recommendation": {
    "category": "General",
    "suggestion": "Consider investing in high-quality carbon offsets to neutralize the emissions you cannot avoid right away, especially from activities like flights, because this funds projects that reduce emissions elsewhere."
  },
  "category_recommendations": {
    "transport": [
      {"suggestion": "If possible, replace one of your weekly car trips with cycling or walking for short distances, because this cuts direct emissions and improves your health."},
      {"suggestion": "When renewing your vehicle, seriously consider an electric or plug-in hybrid car, because weekly car travel is a significant source of continuous emissions."}
    ],
    "food": [
      {"suggestion": "Halve your weekly red meat consumption in favor of more vegetarian meals or chicken, because red meat production has a very high water and carbon footprint."},
      {"suggestion": "Plan your meals and shopping to minimize food waste, because decomposing food in landfills produces methane, a potent greenhouse gas."}
    ],
    "energy": [
      {"suggestion": "Switch to LED bulbs throughout your home, because lighting is a constant draw and LEDs use up to 85% less electricity than incandescent bulbs."},
      {"suggestion": "Reduce heating and air conditioning use by one hour a day, because climate control is typically the largest share of household energy emissions."}
    ],
    "waste": [
      {"suggestion": "Replace single-use plastic bottles with a reusable one, because plastic production and disposal both carry significant emissions."},
      {"suggestion": "Compost your organic waste where possible, because composting avoids the methane produced when food decomposes in landfill."}
    ]
  }
}`

// BuildPrompt renders the instruction prompt for a footprint. Pure function
// of its input: identical footprints yield byte-identical prompts.
func BuildPrompt(input FootprintInput) string {
	replacer := strings.NewReplacer(
		"{{RESULT}}", formatValue(input.Result),
		"{{TRANSPORT_CAR_KM}}", formatValue(input.Transport.CarKm),
		"{{TRANSPORT_PUBLIC_KM}}", formatValue(input.Transport.PublicKm),
		"{{TRANSPORT_DOMESTIC_FLIGHTS}}", formatValue(input.Transport.DomesticFlights),
		"{{TRANSPORT_INTERNATIONAL_FLIGHTS}}", formatValue(input.Transport.InternationalFlights),
		"{{FOOD_RED_MEAT}}", formatValue(input.Food.RedMeat),
		"{{FOOD_WHITE_MEAT}}", formatValue(input.Food.WhiteMeat),
		"{{FOOD_DAIRY}}", formatValue(input.Food.Dairy),
		"{{FOOD_VEGETARIAN}}", formatValue(input.Food.Vegetarian),
		"{{ENERGY_APPLIANCE_HOURS}}", formatValue(input.Energy.ApplianceHours),
		"{{ENERGY_LIGHT_BULBS}}", formatValue(input.Energy.LightBulbs),
		"{{ENERGY_GAS_TANKS}}", formatValue(input.Energy.GasTanks),
		"{{ENERGY_HVAC_HOURS}}", formatValue(input.Energy.HVACHours),
		"{{WASTE_TRASH_BAGS}}", formatValue(input.Waste.TrashBags),
		"{{WASTE_FOOD_WASTE}}", formatValue(input.Waste.FoodWaste),
		"{{WASTE_PLASTIC_BOTTLES}}", formatValue(input.Waste.PlasticBottles),
		"{{WASTE_PAPER_PACKAGES}}", formatValue(input.Waste.PaperPackages),
		"{{EXAMPLE_JSON}}", promptExampleJSON,
	)
	return strings.TrimSpace(replacer.Replace(promptTemplate))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
