package document

import "github.com/agriance/contractgen/model"

// SampleInput returns the built-in sample contract. Adapters merge user
// supplied fields over it.
func SampleInput() model.RawInput {
	in := model.RawInput{}
	in.Set(model.FieldCropName, "Wheat")
	in.Set(model.FieldQuantity, "100")
	in.Set(model.FieldPrice, "2500")
	in.Set(model.FieldDeliveryDate, "31-03-2026")
	in.Set(model.FieldFarmerName, "Ramesh Kumar")
	in.Set(model.FieldFarmerLocation, "Village Ramnagar, District Vadodara, Gujarat")
	in.Set(model.FieldFarmerPhone, "9876543210")
	in.Set(model.FieldFarmerLandSize, "5")
	in.Set(model.FieldBusinessName, "AgriTech Foods Private Limited")
	in.Set(model.FieldBusinessContact, "Suresh Patel")
	in.Set(model.FieldBusinessGST, "24AABCU9603R1ZM")
	in.Set(model.FieldBusinessPhone, "0265-1234567")
	in.Set(model.FieldFarmingMethods, "Organic Farming", "Drip Irrigation", "Integrated Pest Management")
	in.Set(model.FieldEquipment, "Seeds, Fertilizers, Drip Irrigation System")
	in.Set(model.FieldAdvancePercent, "30")
	in.Set(model.FieldDeliveryPercent, "50")
	in.Set(model.FieldQualityPercent, "20")
	in.Set(model.FieldPaymentMode, "Bank Transfer")
	return in
}
