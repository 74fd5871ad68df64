package main

type categorySeed struct {
	Name        string
	Slug        string
	Description string
}

type productSeed struct {
	Category    string
	Name        string
	Slug        string
	Description string
	Price       int64
	SalePrice   int64
	Stock       int
	Image       string
	Featured    bool
}

var categorySeeds = []categorySeed{
	{Name: "Điện thoại & Tablet", Slug: "dien-thoai-tablet", Description: "Điện thoại di động, máy tính bảng các hãng"},
	{Name: "Laptop & Máy tính", Slug: "laptop-may-tinh", Description: "Laptop, PC, linh kiện máy tính"},
	{Name: "Âm thanh & Phụ kiện", Slug: "am-thanh-phu-kien", Description: "Tai nghe, loa, phụ kiện công nghệ"},
	{Name: "Đồng hồ thông minh", Slug: "dong-ho-thong-minh", Description: "Smartwatch, vòng đeo tay thông minh"},
	{Name: "Nhà thông minh", Slug: "nha-thong-minh", Description: "Thiết bị IoT, smarthome"},
}

// productSeeds references categories by slug. A zero SalePrice means no sale.
var productSeeds = []productSeed{
	{Category: "dien-thoai-tablet", Name: "iPhone 15 Pro Max", Slug: "iphone-15-pro-max", Description: "iPhone 15 Pro Max 256GB - Titan xanh, chip A17 Pro, camera 48MP", Price: 34990000, SalePrice: 32990000, Stock: 50, Image: "https://images.unsplash.com/photo-1678652197950-d4938bc0f4c2?w=800", Featured: true},
	{Category: "dien-thoai-tablet", Name: "Samsung Galaxy S24 Ultra", Slug: "samsung-galaxy-s24-ultra", Description: "Galaxy S24 Ultra 512GB - Tím, chip Snapdragon 8 Gen 3, camera 200MP", Price: 31990000, SalePrice: 29990000, Stock: 45, Image: "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=800", Featured: true},
	{Category: "dien-thoai-tablet", Name: "Xiaomi 14 Ultra", Slug: "xiaomi-14-ultra", Description: "Xiaomi 14 Ultra 16GB/512GB - Đen, camera Leica, chip Snapdragon 8 Gen 3", Price: 27990000, SalePrice: 25990000, Stock: 30, Image: "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=800", Featured: true},
	{Category: "dien-thoai-tablet", Name: "iPhone 14 Pro", Slug: "iphone-14-pro", Description: "iPhone 14 Pro 256GB - Tím, Dynamic Island, camera 48MP", Price: 27990000, SalePrice: 24990000, Stock: 60, Image: "https://images.unsplash.com/photo-1663499482523-1c0d2109cfb0?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "OPPO Find X7 Ultra", Slug: "oppo-find-x7-ultra", Description: "OPPO Find X7 Ultra 16GB/512GB - Camera Hasselblad", Price: 24990000, SalePrice: 22990000, Stock: 25, Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "Samsung Galaxy Z Fold 5", Slug: "samsung-galaxy-z-fold-5", Description: "Galaxy Z Fold 5 512GB - Màn hình gập, chip Snapdragon 8 Gen 2", Price: 40990000, SalePrice: 37990000, Stock: 20, Image: "https://images.unsplash.com/photo-1585060544812-6b45742d762f?w=800", Featured: true},
	{Category: "dien-thoai-tablet", Name: "Google Pixel 8 Pro", Slug: "google-pixel-8-pro", Description: "Pixel 8 Pro 256GB - AI camera, chip Tensor G3", Price: 24990000, SalePrice: 0, Stock: 35, Image: "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "Vivo X100 Pro", Slug: "vivo-x100-pro", Description: "Vivo X100 Pro - Camera ZEISS, chip Dimensity 9300", Price: 22990000, SalePrice: 20990000, Stock: 28, Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "OnePlus 12", Slug: "oneplus-12", Description: "OnePlus 12 16GB/256GB - Camera Hasselblad, sạc nhanh 100W", Price: 19990000, SalePrice: 18490000, Stock: 40, Image: "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "iPhone 13", Slug: "iphone-13", Description: "iPhone 13 128GB - Hồng, chip A15 Bionic", Price: 17990000, SalePrice: 15990000, Stock: 80, Image: "https://images.unsplash.com/photo-1632661674596-df8be070a5c5?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "Samsung Galaxy A54", Slug: "samsung-galaxy-a54", Description: "Galaxy A54 8GB/256GB - Màn hình Super AMOLED 120Hz", Price: 10990000, SalePrice: 9990000, Stock: 100, Image: "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "Xiaomi Redmi Note 13 Pro", Slug: "xiaomi-redmi-note-13-pro", Description: "Redmi Note 13 Pro 8GB/256GB - Camera 200MP", Price: 7990000, SalePrice: 6990000, Stock: 150, Image: "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "iPad Pro M2 11 inch", Slug: "ipad-pro-m2-11", Description: "iPad Pro M2 11 inch 256GB - Chip M2, màn hình Liquid Retina", Price: 24990000, SalePrice: 22990000, Stock: 35, Image: "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=800", Featured: true},
	{Category: "dien-thoai-tablet", Name: "Samsung Galaxy Tab S9", Slug: "samsung-galaxy-tab-s9", Description: "Galaxy Tab S9 256GB - Màn hình Dynamic AMOLED 2X", Price: 19990000, SalePrice: 17990000, Stock: 40, Image: "https://images.unsplash.com/photo-1561154464-82e9adf32764?w=800", Featured: false},
	{Category: "dien-thoai-tablet", Name: "Xiaomi Pad 6", Slug: "xiaomi-pad-6", Description: "Xiaomi Pad 6 8GB/256GB - Màn hình 11 inch 144Hz", Price: 8990000, SalePrice: 7990000, Stock: 60, Image: "https://images.unsplash.com/photo-1585790050230-5dd28404f8f3?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "MacBook Pro 14 M3 Pro", Slug: "macbook-pro-14-m3-pro", Description: "MacBook Pro 14 inch M3 Pro 18GB/512GB - Xám", Price: 52990000, SalePrice: 49990000, Stock: 25, Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=800", Featured: true},
	{Category: "laptop-may-tinh", Name: "Dell XPS 15", Slug: "dell-xps-15", Description: "Dell XPS 15 i7-13700H/16GB/512GB - Màn hình 4K OLED", Price: 45990000, SalePrice: 42990000, Stock: 20, Image: "https://images.unsplash.com/photo-1593642632823-8f785ba67e45?w=800", Featured: true},
	{Category: "laptop-may-tinh", Name: "ASUS ROG Zephyrus G14", Slug: "asus-rog-zephyrus-g14", Description: "ROG Zephyrus G14 Ryzen 9/32GB/1TB RTX 4060 - Gaming", Price: 42990000, SalePrice: 39990000, Stock: 18, Image: "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=800", Featured: true},
	{Category: "laptop-may-tinh", Name: "MacBook Air M2", Slug: "macbook-air-m2", Description: "MacBook Air M2 8GB/256GB - Xanh, siêu mỏng nhẹ", Price: 28990000, SalePrice: 26990000, Stock: 50, Image: "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "Lenovo ThinkPad X1 Carbon", Slug: "lenovo-thinkpad-x1-carbon", Description: "ThinkPad X1 Carbon i7-1365U/16GB/512GB - Business", Price: 38990000, SalePrice: 35990000, Stock: 30, Image: "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "HP Spectre x360", Slug: "hp-spectre-x360", Description: "HP Spectre x360 i7/16GB/1TB - 2 in 1, màn hình cảm ứng", Price: 35990000, SalePrice: 32990000, Stock: 22, Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "MSI GE76 Raider", Slug: "msi-ge76-raider", Description: "MSI GE76 i9/32GB/2TB RTX 4080 - Gaming đỉnh cao", Price: 65990000, SalePrice: 62990000, Stock: 10, Image: "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=800", Featured: true},
	{Category: "laptop-may-tinh", Name: "Acer Swift X", Slug: "acer-swift-x", Description: "Acer Swift X Ryzen 7/16GB/512GB RTX 3050 - Mỏng nhẹ", Price: 22990000, SalePrice: 19990000, Stock: 40, Image: "https://images.unsplash.com/photo-1593642632823-8f785ba67e45?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "LG Gram 17", Slug: "lg-gram-17", Description: "LG Gram 17 inch i7/16GB/512GB - Siêu nhẹ 1.35kg", Price: 32990000, SalePrice: 29990000, Stock: 25, Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "Razer Blade 15", Slug: "razer-blade-15", Description: "Razer Blade 15 i7/16GB/1TB RTX 4070 - Gaming premium", Price: 54990000, SalePrice: 51990000, Stock: 15, Image: "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "Microsoft Surface Laptop 5", Slug: "microsoft-surface-laptop-5", Description: "Surface Laptop 5 i5/16GB/512GB - Cảm ứng", Price: 27990000, SalePrice: 25990000, Stock: 35, Image: "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "ASUS ZenBook 14", Slug: "asus-zenbook-14", Description: "ASUS ZenBook 14 OLED i7/16GB/512GB - Mỏng nhẹ", Price: 24990000, SalePrice: 22990000, Stock: 45, Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "Gigabyte Aero 16", Slug: "gigabyte-aero-16", Description: "Gigabyte Aero 16 i9/32GB/1TB RTX 4060 - Creator", Price: 48990000, SalePrice: 45990000, Stock: 12, Image: "https://images.unsplash.com/photo-1593642632823-8f785ba67e45?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "Alienware m15 R7", Slug: "alienware-m15-r7", Description: "Alienware m15 R7 i7/16GB/1TB RTX 4060 - Gaming", Price: 44990000, SalePrice: 41990000, Stock: 18, Image: "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=800", Featured: false},
	{Category: "laptop-may-tinh", Name: "Huawei MateBook X Pro", Slug: "huawei-matebook-x-pro", Description: "MateBook X Pro i7/16GB/1TB - Màn hình cảm ứng 3K", Price: 33990000, SalePrice: 30990000, Stock: 20, Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "AirPods Pro 2", Slug: "airpods-pro-2", Description: "AirPods Pro thế hệ 2 - Chống ồn chủ động, USB-C", Price: 6490000, SalePrice: 5990000, Stock: 100, Image: "https://images.unsplash.com/photo-1606841837239-c5a1a4a07af7?w=800", Featured: true},
	{Category: "am-thanh-phu-kien", Name: "Sony WH-1000XM5", Slug: "sony-wh-1000xm5", Description: "Sony WH-1000XM5 - Tai nghe chống ồn tốt nhất", Price: 8990000, SalePrice: 7990000, Stock: 60, Image: "https://images.unsplash.com/photo-1546435770-a3e426bf472b?w=800", Featured: true},
	{Category: "am-thanh-phu-kien", Name: "JBL Flip 6", Slug: "jbl-flip-6", Description: "Loa bluetooth JBL Flip 6 - Chống nước IP67", Price: 2990000, SalePrice: 2490000, Stock: 80, Image: "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "Samsung Galaxy Buds2 Pro", Slug: "samsung-galaxy-buds2-pro", Description: "Galaxy Buds2 Pro - Chống ồn 360 Audio", Price: 4490000, SalePrice: 3990000, Stock: 90, Image: "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "Bose QuietComfort 45", Slug: "bose-quietcomfort-45", Description: "Bose QC45 - Tai nghe chống ồn cao cấp", Price: 7990000, SalePrice: 6990000, Stock: 40, Image: "https://images.unsplash.com/photo-1545127398-14699f92334b?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "Anker PowerCore 20000mAh", Slug: "anker-powercore-20000", Description: "Pin sạc dự phòng Anker 20000mAh - Sạc nhanh PD", Price: 1290000, SalePrice: 990000, Stock: 200, Image: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "Logitech MX Master 3S", Slug: "logitech-mx-master-3s", Description: "Chuột không dây Logitech MX Master 3S - Cho dân văn phòng", Price: 2490000, SalePrice: 2190000, Stock: 70, Image: "https://images.unsplash.com/photo-1527814050087-3793815479db?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "Keychron K8 Pro", Slug: "keychron-k8-pro", Description: "Bàn phím cơ Keychron K8 Pro - RGB, Hot-swap", Price: 2990000, SalePrice: 2690000, Stock: 50, Image: "https://images.unsplash.com/photo-1595225476474-87563907a212?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "Marshall Emberton II", Slug: "marshall-emberton-ii", Description: "Loa bluetooth Marshall Emberton II - Âm thanh Rock", Price: 4990000, SalePrice: 4490000, Stock: 35, Image: "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=800", Featured: false},
	{Category: "am-thanh-phu-kien", Name: "Belkin 3-in-1 Wireless Charger", Slug: "belkin-3in1-charger", Description: "Đế sạc không dây Belkin 3-in-1 cho iPhone, AirPods, Apple Watch", Price: 3490000, SalePrice: 2990000, Stock: 45, Image: "https://images.unsplash.com/photo-1591290619762-5dd77e671dd0?w=800", Featured: false},
	{Category: "dong-ho-thong-minh", Name: "Apple Watch Series 9", Slug: "apple-watch-series-9", Description: "Apple Watch Series 9 45mm - GPS, màn hình sáng hơn", Price: 10990000, SalePrice: 9990000, Stock: 60, Image: "https://images.unsplash.com/photo-1434494878577-86c23bcb06b9?w=800", Featured: true},
	{Category: "dong-ho-thong-minh", Name: "Samsung Galaxy Watch 6", Slug: "samsung-galaxy-watch-6", Description: "Galaxy Watch 6 44mm - Theo dõi sức khỏe toàn diện", Price: 7990000, SalePrice: 6990000, Stock: 50, Image: "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800", Featured: true},
	{Category: "dong-ho-thong-minh", Name: "Garmin Fenix 7", Slug: "garmin-fenix-7", Description: "Garmin Fenix 7 - Đồng hồ thể thao chuyên nghiệp", Price: 17990000, SalePrice: 15990000, Stock: 25, Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800", Featured: false},
	{Category: "dong-ho-thong-minh", Name: "Xiaomi Watch 2 Pro", Slug: "xiaomi-watch-2-pro", Description: "Xiaomi Watch 2 Pro - GPS, pin 14 ngày", Price: 4990000, SalePrice: 4490000, Stock: 80, Image: "https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?w=800", Featured: false},
	{Category: "dong-ho-thong-minh", Name: "Huawei Watch GT 4", Slug: "huawei-watch-gt-4", Description: "Huawei Watch GT 4 46mm - Pin 14 ngày, thiết kế sang trọng", Price: 5990000, SalePrice: 5490000, Stock: 70, Image: "https://images.unsplash.com/photo-1544117519-31a4b719223d?w=800", Featured: false},
	{Category: "nha-thong-minh", Name: "Google Nest Hub Max", Slug: "google-nest-hub-max", Description: "Google Nest Hub Max - Màn hình thông minh 10 inch", Price: 5990000, SalePrice: 4990000, Stock: 40, Image: "https://images.unsplash.com/photo-1558002038-1055907df827?w=800", Featured: true},
	{Category: "nha-thong-minh", Name: "Amazon Echo Show 10", Slug: "amazon-echo-show-10", Description: "Echo Show 10 - Màn hình xoay tự động với Alexa", Price: 6490000, SalePrice: 5490000, Stock: 35, Image: "https://images.unsplash.com/photo-1558089687-e946e3452f1c?w=800", Featured: false},
	{Category: "nha-thong-minh", Name: "Philips Hue Starter Kit", Slug: "philips-hue-starter-kit", Description: "Bộ đèn thông minh Philips Hue - 3 bóng + Hub", Price: 3990000, SalePrice: 3490000, Stock: 60, Image: "https://images.unsplash.com/photo-1558089687-e946e3452f1c?w=800", Featured: false},
	{Category: "nha-thong-minh", Name: "Ring Video Doorbell Pro 2", Slug: "ring-doorbell-pro-2", Description: "Chuông cửa thông minh Ring - Camera HD, phát hiện chuyển động", Price: 4990000, SalePrice: 4490000, Stock: 45, Image: "https://images.unsplash.com/photo-1558002038-1055907df827?w=800", Featured: false},
	{Category: "nha-thong-minh", Name: "TP-Link Tapo Smart Plug", Slug: "tapo-smart-plug", Description: "Ổ cắm thông minh TP-Link Tapo - Điều khiển từ xa", Price: 299000, SalePrice: 249000, Stock: 200, Image: "https://images.unsplash.com/photo-1558002038-1055907df827?w=800", Featured: false},
}
